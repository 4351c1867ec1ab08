package database

import (
	"context"
	"database/sql"

	"github.com/rivalrockets/rivalrockets-api/internal/model"
)

// Deletes cascade in application code, so no ON DELETE clauses here:
// the repositories remove dependents explicitly and the two-step
// active-revision update stays observable.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS roles (
		id          TINYINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name        VARCHAR(64)  NOT NULL,
		is_default  TINYINT(1)   NOT NULL DEFAULT 0,
		permissions INT          NOT NULL DEFAULT 0,
		PRIMARY KEY (id),
		UNIQUE KEY uq_roles_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username      VARCHAR(32)  NOT NULL,
		password_hash VARCHAR(128) NOT NULL,
		role_id       TINYINT UNSIGNED NOT NULL,
		last_seen     DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS revoked_tokens (
		id  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		jti VARCHAR(120) NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_revoked_tokens_jti (jti)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS machines (
		id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		system_name        TEXT NOT NULL,
		system_notes       TEXT NOT NULL,
		system_notes_html  TEXT NOT NULL,
		owner              TEXT NOT NULL,
		active_revision_id BIGINT UNSIGNED NULL,
		timestamp          DATETIME NOT NULL,
		author_id          BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		KEY ix_machines_timestamp (timestamp),
		KEY ix_machines_author (author_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS revisions (
		id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		cpu_make            VARCHAR(64) NOT NULL DEFAULT '',
		cpu_name            VARCHAR(64) NOT NULL DEFAULT '',
		cpu_socket          VARCHAR(64) NOT NULL DEFAULT '',
		cpu_mhz             INT NULL,
		cpu_proc_cores      INT NULL,
		chipset             VARCHAR(64) NOT NULL DEFAULT '',
		system_memory_gb    INT NULL,
		system_memory_mhz   INT NULL,
		gpu_name            VARCHAR(64) NOT NULL DEFAULT '',
		gpu_make            VARCHAR(64) NOT NULL DEFAULT '',
		gpu_memory_mb       INT NULL,
		gpu_count           INT NULL,
		revision_notes      TEXT NOT NULL,
		revision_notes_html TEXT NOT NULL,
		pcpartpicker_url    VARCHAR(255) NOT NULL DEFAULT '',
		timestamp           DATETIME NOT NULL,
		author_id           BIGINT UNSIGNED NOT NULL,
		machine_id          BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		KEY ix_revisions_timestamp (timestamp),
		KEY ix_revisions_machine (machine_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS cinebenchr15results (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		result_date DATETIME NOT NULL,
		cpu_cb      INT NULL,
		opengl_fps  INT NULL,
		revision_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		KEY ix_cinebenchr15results_cpu_cb (cpu_cb),
		KEY ix_cinebenchr15results_revision (revision_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS futuremark3dmark06results (
		id                BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		result_date       DATETIME NOT NULL,
		sm2_score         INT NULL,
		cpu_score         INT NULL,
		sm3_score         INT NULL,
		proxcyon_fps      DECIMAL(5,2) NULL,
		fireflyforest_fps DECIMAL(5,2) NULL,
		cpu1_fps          DECIMAL(5,2) NULL,
		cpu2_fps          DECIMAL(5,2) NULL,
		canyonflight_fps  DECIMAL(5,2) NULL,
		deepfreeze_fps    DECIMAL(5,2) NULL,
		overall_score     INT NULL,
		result_url        VARCHAR(255) NOT NULL DEFAULT '',
		revision_id       BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		KEY ix_futuremark3dmark06results_overall (overall_score),
		KEY ix_futuremark3dmark06results_revision (revision_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS futuremark3dmarkresults (
		id                    BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		result_date           DATETIME NOT NULL,
		icestorm_score        INT NULL,
		icestorm_result_url   VARCHAR(255) NOT NULL DEFAULT '',
		cloudgate_score       INT NULL,
		cloudgate_result_url  VARCHAR(255) NOT NULL DEFAULT '',
		firestrike_score      INT NULL,
		firestrike_result_url VARCHAR(255) NOT NULL DEFAULT '',
		skydiver_score        INT NULL,
		skydiver_result_url   VARCHAR(255) NOT NULL DEFAULT '',
		overall_result_url    VARCHAR(255) NOT NULL DEFAULT '',
		revision_id           BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		KEY ix_futuremark3dmarkresults_firestrike (firestrike_score),
		KEY ix_futuremark3dmarkresults_revision (revision_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates any missing tables and refreshes the seeded roles.
// Safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return seedRoles(ctx, db)
}

// seedRoles upserts the three well-known roles. Permissions and the
// default flag are refreshed on existing rows so a mask change ships
// without a manual migration. The mask itself is dead capability: no
// authorization check reads it yet.
func seedRoles(ctx context.Context, db *sql.DB) error {
	roles := []model.Role{
		{Name: "User", IsDefault: true, Permissions: model.PermissionPost | model.PermissionPut},
		{Name: "Maintainer", Permissions: model.PermissionPost | model.PermissionPut | model.PermissionDelete},
		{Name: "Administrator", Permissions: 0xFF},
	}
	for _, r := range roles {
		_, err := db.ExecContext(ctx,
			`INSERT INTO roles (name, is_default, permissions) VALUES (?,?,?)
			 ON DUPLICATE KEY UPDATE is_default=VALUES(is_default), permissions=VALUES(permissions)`,
			r.Name, r.IsDefault, r.Permissions)
		if err != nil {
			return err
		}
	}
	return nil
}
