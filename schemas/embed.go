// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the SQL migration files, one directory per database driver
// (migrations/mysql, migrations/sqlite3).
//
//go:embed migrations/mysql/*.sql migrations/sqlite3/*.sql
var Migrations embed.FS
