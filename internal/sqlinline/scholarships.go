package sqlinline

const QInsertScholarship = `--sql 4f9e1d68-f67d-4c1e-b5e3-e7efb0983d19
insert into scholarships(id, scholarship_name, university_name, country, category, tuition_fee, application_fee, service_charge, moderator_email, moderator_name, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, $4::text, $5::bigint, $6::bigint, $7::bigint, $8::text, $9::text, now())
returning id, scholarship_name, university_name, country, category, tuition_fee, application_fee, service_charge, moderator_email, moderator_name, created_at;
`

const QSelectScholarshipByID = `--sql c83b53e3-607d-42bd-9686-c6460ec3e86b
select id, scholarship_name, university_name, country, category, tuition_fee, application_fee, service_charge, moderator_email, moderator_name, created_at
from scholarships
where id = $1::uuid
limit 1;
`

// QListScholarshipsBase is completed by the repository, which appends the
// conditional where/order clauses for search, country, category and sort.
const QListScholarshipsBase = `--sql e8c3fde7-c091-4613-8252-f596c82fb815
select id, scholarship_name, university_name, country, category, tuition_fee, application_fee, service_charge, moderator_email, moderator_name, created_at
from scholarships
`

const QListScholarshipsByModerator = `--sql bf08a5e9-d17d-4d9f-aa14-118b504c363a
select id, scholarship_name, university_name, country, category, tuition_fee, application_fee, service_charge, moderator_email, moderator_name, created_at
from scholarships
where moderator_email = $1::text
order by created_at desc;
`

const QUpdateScholarshipOwned = `--sql 04f441a7-c9a8-4e93-8127-f644855e45e4
update scholarships set
    scholarship_name = coalesce(nullif($3::text, ''), scholarship_name),
    university_name  = coalesce(nullif($4::text, ''), university_name),
    country          = coalesce(nullif($5::text, ''), country),
    category         = coalesce(nullif($6::text, ''), category),
    tuition_fee      = coalesce($7::bigint, tuition_fee),
    application_fee  = coalesce($8::bigint, application_fee),
    service_charge   = coalesce($9::bigint, service_charge)
where id = $1::uuid and moderator_email = $2::text
returning id, scholarship_name, university_name, country, category, tuition_fee, application_fee, service_charge, moderator_email, moderator_name, created_at;
`

const QUpdateScholarship = `--sql c331fe6a-77e7-49bd-993c-a37728fb503d
update scholarships set
    scholarship_name = coalesce(nullif($2::text, ''), scholarship_name),
    university_name  = coalesce(nullif($3::text, ''), university_name),
    country          = coalesce(nullif($4::text, ''), country),
    category         = coalesce(nullif($5::text, ''), category),
    tuition_fee      = coalesce($6::bigint, tuition_fee),
    application_fee  = coalesce($7::bigint, application_fee),
    service_charge   = coalesce($8::bigint, service_charge)
where id = $1::uuid
returning id, scholarship_name, university_name, country, category, tuition_fee, application_fee, service_charge, moderator_email, moderator_name, created_at;
`

const QDeleteScholarshipOwned = `--sql 2251e1cf-e9e2-40a3-95bf-96d8bbdc77de
delete from scholarships
where id = $1::uuid and moderator_email = $2::text;
`

const QDeleteScholarship = `--sql c25f02ca-f2ea-4861-8db5-9ca61ce2f8e4
delete from scholarships
where id = $1::uuid;
`
