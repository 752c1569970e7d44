package store

// Schema DDL. Doors and role rooms keep their configured order through the
// ordinal column, so a loaded layout lists them as it was saved.
const (
	createLayouts = `CREATE TABLE IF NOT EXISTS layouts (
    name TEXT PRIMARY KEY,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    updated_at TEXT NOT NULL
);`

	createDoors = `CREATE TABLE IF NOT EXISTS doors (
    layout TEXT NOT NULL REFERENCES layouts(name) ON DELETE CASCADE,
    ordinal INTEGER NOT NULL,
    from_x INTEGER NOT NULL,
    from_y INTEGER NOT NULL,
    to_x INTEGER NOT NULL,
    to_y INTEGER NOT NULL,
    PRIMARY KEY (layout, ordinal)
);`

	createRoles = `CREATE TABLE IF NOT EXISTS roles (
    layout TEXT NOT NULL REFERENCES layouts(name) ON DELETE CASCADE,
    role TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    x INTEGER NOT NULL,
    y INTEGER NOT NULL,
    PRIMARY KEY (layout, role, ordinal)
);`

	createRuns = `CREATE TABLE IF NOT EXISTS runs (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL UNIQUE,
    layout TEXT NOT NULL,
    query TEXT NOT NULL,
    level INTEGER NOT NULL,
    solutions INTEGER NOT NULL,
    steps INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createLayouts,
	createDoors,
	createRoles,
	createRuns,
}
