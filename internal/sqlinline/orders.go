package sqlinline

const QInsertOrder = `--sql b440e5ce-dcea-4449-a0c0-2cb887c08b3b
insert into orders(id, session_id, transaction_id, scholarship_id, student_email, amount_paid, payment_status, status, moderator_email, moderator_name, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::uuid, $4::text, $5::bigint, $6::text, $7::text, $8::text, $9::text, now())
returning id, session_id, transaction_id, scholarship_id, student_email, amount_paid, payment_status, status, moderator_email, moderator_name, created_at;
`

const QSelectOrderByTransaction = `--sql af45efa4-e21c-4024-8d0a-ccfa41bbc623
select id, session_id, transaction_id, scholarship_id, student_email, amount_paid, payment_status, status, moderator_email, moderator_name, created_at
from orders
where transaction_id = $1::text
limit 1;
`

const QListOrdersByStudent = `--sql 369e5d1c-22c2-48a6-9e1b-618b25c81dfe
select id, session_id, transaction_id, scholarship_id, student_email, amount_paid, payment_status, status, moderator_email, moderator_name, created_at
from orders
where student_email = $1::text
order by created_at desc;
`

const QListOrdersByModerator = `--sql 9a279260-c1d7-450d-82ad-8fae6c848af7
select id, session_id, transaction_id, scholarship_id, student_email, amount_paid, payment_status, status, moderator_email, moderator_name, created_at
from orders
where moderator_email = $1::text
order by created_at desc;
`

// The ownership gate: keyed on id and moderator email in one statement so
// the authorization check and the mutation share a snapshot. Transitions are
// only allowed out of pending.
const QUpdateOrderStatusOwned = `--sql fc17aa7a-990c-4519-bc60-cc6d969dec66
update orders set status = $3::text
where id = $1::uuid and moderator_email = $2::text and status = 'pending'
returning id, session_id, transaction_id, scholarship_id, student_email, amount_paid, payment_status, status, moderator_email, moderator_name, created_at;
`

const QDeleteOrderOwned = `--sql fce0d948-ab30-4401-8a9d-ca4b2f03f5ac
delete from orders
where id = $1::uuid and moderator_email = $2::text;
`
