package sqlinline

// Schema DDL applied by cmd/migrate. Statements are idempotent so the tool
// can run on every deploy.

const DDLUsers = `--sql adfefaaa-8612-494f-acf5-f0d5715952e9
create table if not exists users (
    email              text primary key,
    name               text not null default '',
    role               text not null default 'student',
    last_login_country text not null default '',
    created_at         timestamptz not null default now(),
    last_logged_in     timestamptz not null default now()
);
`

const DDLScholarships = `--sql 39e8e982-4f63-451b-b17f-9425fa8bd2a7
create table if not exists scholarships (
    id               uuid primary key default gen_random_uuid(),
    scholarship_name text not null,
    university_name  text not null,
    country          text not null default '',
    category         text not null default '',
    tuition_fee      bigint not null default 0,
    application_fee  bigint not null default 0,
    service_charge   bigint not null default 0,
    moderator_email  text not null,
    moderator_name   text not null default '',
    created_at       timestamptz not null default now()
);
create index if not exists scholarships_moderator_email_idx on scholarships (moderator_email);
`

// orders.transaction_id carries the uniqueness constraint that backs the
// at-most-one-order-per-payment invariant. A losing concurrent insert fails
// here rather than producing a duplicate row.
const DDLOrders = `--sql 8b4207e0-906f-4ee9-aac0-26d56546fe86
create table if not exists orders (
    id              uuid primary key default gen_random_uuid(),
    session_id      text not null,
    transaction_id  text not null unique,
    scholarship_id  uuid not null,
    student_email   text not null,
    amount_paid     bigint not null default 0,
    payment_status  text not null default '',
    status          text not null default 'pending',
    moderator_email text not null,
    moderator_name  text not null default '',
    created_at      timestamptz not null default now()
);
create index if not exists orders_student_email_idx on orders (student_email);
create index if not exists orders_moderator_email_idx on orders (moderator_email);
`
