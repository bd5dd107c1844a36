package database

// Every uniqueness invariant of the domain has a matching UNIQUE constraint so
// the store rejects a racing duplicate even if an application check passed.

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT,
		name TEXT NOT NULL,
		profile_color TEXT NOT NULL DEFAULT 'bg-green-300',
		bio TEXT NOT NULL DEFAULT '친환경 실천 중!',
		kakao_id TEXT UNIQUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS catalog_missions (
		id INTEGER PRIMARY KEY,
		category TEXT NOT NULL,
		submissions TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS day_missions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		mission_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		sub_mission TEXT NOT NULL DEFAULT '',
		completed BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, date, sub_mission),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS weekly_personal_routines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		mission_id INTEGER NOT NULL,
		sub_mission TEXT NOT NULL DEFAULT '',
		week_start_date TEXT NOT NULL,
		start_date TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, week_start_date, mission_id, sub_mission),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS group_missions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT 'bg-blue-300',
		created_by INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS group_members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		group_mission_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		joined_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(group_mission_id, user_id),
		FOREIGN KEY (group_mission_id) REFERENCES group_missions(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS group_mission_checks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		group_mission_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(group_mission_id, user_id, date),
		FOREIGN KEY (group_mission_id) REFERENCES group_missions(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS invites (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		group_mission_id INTEGER NOT NULL,
		from_user_id INTEGER NOT NULL,
		to_user_id INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (group_mission_id) REFERENCES group_missions(id) ON DELETE CASCADE,
		FOREIGN KEY (from_user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (to_user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS friends (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		friend_id INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, friend_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (friend_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS push_subscriptions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		endpoint TEXT NOT NULL,
		p256dh TEXT NOT NULL,
		auth TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, endpoint),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	-- Server-side refresh token store for rotating refresh tokens
	CREATE TABLE IF NOT EXISTS refresh_tokens (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		token_hash TEXT NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		ttl_days INTEGER NOT NULL DEFAULT 7,
		revoked BOOLEAN DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_day_missions_user_date ON day_missions(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_routines_user_week ON weekly_personal_routines(user_id, week_start_date);
	CREATE INDEX IF NOT EXISTS idx_group_checks_group_date ON group_mission_checks(group_mission_id, date);
	CREATE INDEX IF NOT EXISTS idx_invites_to_user ON invites(to_user_id, status);
	CREATE UNIQUE INDEX IF NOT EXISTS uq_invites_pending ON invites(group_mission_id, to_user_id) WHERE status = 'pending';
	CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id);
	`

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT,
		name TEXT NOT NULL,
		profile_color TEXT NOT NULL DEFAULT 'bg-green-300',
		bio TEXT NOT NULL DEFAULT '친환경 실천 중!',
		kakao_id TEXT UNIQUE,
		created_at TIMESTAMPTZ DEFAULT now(),
		updated_at TIMESTAMPTZ DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS catalog_missions (
		id INTEGER PRIMARY KEY,
		category TEXT NOT NULL,
		submissions TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS day_missions (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		mission_id INTEGER NOT NULL,
		date DATE NOT NULL,
		sub_mission TEXT NOT NULL DEFAULT '',
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ DEFAULT now(),
		CONSTRAINT uq_user_date_sub_mission UNIQUE (user_id, date, sub_mission)
	);

	CREATE TABLE IF NOT EXISTS weekly_personal_routines (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		mission_id INTEGER NOT NULL,
		sub_mission TEXT NOT NULL DEFAULT '',
		week_start_date DATE NOT NULL,
		start_date DATE NOT NULL,
		created_at TIMESTAMPTZ DEFAULT now(),
		CONSTRAINT uq_user_week_mission_submission UNIQUE (user_id, week_start_date, mission_id, sub_mission)
	);

	CREATE TABLE IF NOT EXISTS group_missions (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT 'bg-blue-300',
		created_by INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS group_members (
		id SERIAL PRIMARY KEY,
		group_mission_id INTEGER NOT NULL REFERENCES group_missions(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		joined_at TIMESTAMPTZ DEFAULT now(),
		CONSTRAINT uq_group_user UNIQUE (group_mission_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS group_mission_checks (
		id SERIAL PRIMARY KEY,
		group_mission_id INTEGER NOT NULL REFERENCES group_missions(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ DEFAULT now(),
		CONSTRAINT uq_group_user_date UNIQUE (group_mission_id, user_id, date)
	);

	CREATE TABLE IF NOT EXISTS invites (
		id SERIAL PRIMARY KEY,
		group_mission_id INTEGER NOT NULL REFERENCES group_missions(id) ON DELETE CASCADE,
		from_user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		to_user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS friends (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		friend_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ DEFAULT now(),
		CONSTRAINT uq_friends UNIQUE (user_id, friend_id)
	);

	CREATE TABLE IF NOT EXISTS push_subscriptions (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		endpoint TEXT NOT NULL,
		p256dh TEXT NOT NULL,
		auth TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT now(),
		UNIQUE (user_id, endpoint)
	);

	CREATE TABLE IF NOT EXISTS refresh_tokens (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash TEXT NOT NULL UNIQUE,
		expires_at TIMESTAMPTZ NOT NULL,
		ttl_days INTEGER NOT NULL DEFAULT 7,
		revoked BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMPTZ DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_day_missions_user_date ON day_missions(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_routines_user_week ON weekly_personal_routines(user_id, week_start_date);
	CREATE INDEX IF NOT EXISTS idx_group_checks_group_date ON group_mission_checks(group_mission_id, date);
	CREATE INDEX IF NOT EXISTS idx_invites_to_user ON invites(to_user_id, status);
	CREATE UNIQUE INDEX IF NOT EXISTS uq_invites_pending ON invites(group_mission_id, to_user_id) WHERE status = 'pending';
	CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id);
	`
