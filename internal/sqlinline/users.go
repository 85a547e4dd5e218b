package sqlinline

// First sign-in inserts with the student role; later sign-ins only touch the
// login fields. Roles are changed exclusively through QUpdateUserRole.
const QUpsertUserOnLogin = `--sql fcbf490e-8327-4a07-9aa7-ec6f2ab4f336
insert into users(email, name, role, last_login_country, created_at, last_logged_in)
values ($1::text, $2::text, 'student', $3::text, now(), now())
on conflict (email) do update set
    name = coalesce(nullif(excluded.name, ''), users.name),
    last_login_country = coalesce(nullif(excluded.last_login_country, ''), users.last_login_country),
    last_logged_in = now()
returning email, name, role, last_login_country, created_at, last_logged_in;
`

const QSelectUserByEmail = `--sql 80dbbf5b-61a6-4707-9368-59172861ea96
select email, name, role, last_login_country, created_at, last_logged_in
from users
where email = $1::text
limit 1;
`

const QListUsers = `--sql be7ac0e3-b17a-4f61-92d1-00f8a448615b
select email, name, role, last_login_country, created_at, last_logged_in
from users
order by created_at desc;
`

const QUpdateUserRole = `--sql 1752fa5d-616a-43b9-a3e6-2f861fbd8bf7
update users set role = $2::text
where email = $1::text
returning email, name, role, last_login_country, created_at, last_logged_in;
`
