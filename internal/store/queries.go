// store/queries.go - Centralized SQL queries for DRY
package store

// Column lists for SELECT statements
const (
	userColumns = `id, name, email, location, title, access, department, status, created_at`
	userTable   = `users`

	projectColumns = `id, name, client, status, lead_id, man_days, completed_days, budget,
		period_start, period_end, revenue, target_margin, stripe_payment_id, created_at`
	projectTable = `projects`

	roleColumns = `id, project_id, role, man_days, hourly_rate`
	roleTable   = `project_roles`

	allocationColumns = `id, project_id, user_id, role_id, start_date, end_date, percentage`
	allocationTable   = `allocations`

	entryColumns = `id, project_id, user_id, entry_date, hours, description, status, tags, billable, created_at`
	entryTable   = `time_entries`
)

// User queries
const (
	qUserInsert = `INSERT INTO ` + userTable +
		` (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	qUserByID = `SELECT ` + userColumns + ` FROM ` + userTable + ` WHERE id = ?`

	qUserUpdate = `UPDATE ` + userTable +
		` SET name=?, email=?, location=?, title=?, access=?, department=?, status=? WHERE id=?`

	qUserSetStatus = `UPDATE ` + userTable + ` SET status=? WHERE id=?`

	qUsersAll = `SELECT ` + userColumns + ` FROM ` + userTable + ` ORDER BY name`

	qUsersSearch = `SELECT ` + userColumns + ` FROM ` + userTable +
		` WHERE name LIKE ? OR email LIKE ? ORDER BY name`
)

// Project queries
const (
	qProjectInsert = `INSERT INTO ` + projectTable +
		` (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	qProjectByID = `SELECT ` + projectColumns + ` FROM ` + projectTable + ` WHERE id = ?`

	qProjectByStripeID = `SELECT ` + projectColumns + ` FROM ` + projectTable + ` WHERE stripe_payment_id = ?`

	qProjectUpdate = `UPDATE ` + projectTable +
		` SET name=?, client=?, status=?, lead_id=?, man_days=?, completed_days=?, budget=?,
		period_start=?, period_end=?, revenue=?, target_margin=?, stripe_payment_id=? WHERE id=?`

	qProjectSetStatus = `UPDATE ` + projectTable + ` SET status=? WHERE id=?`

	qProjectRecordPayment = `UPDATE ` + projectTable +
		` SET revenue = revenue + ?, stripe_payment_id=? WHERE id=?`

	qProjectDelete = `DELETE FROM ` + projectTable + ` WHERE id = ?`

	qProjectsAll = `SELECT ` + projectColumns + ` FROM ` + projectTable + ` ORDER BY created_at DESC`

	qProjectsSearch = `SELECT ` + projectColumns + ` FROM ` + projectTable +
		` WHERE name LIKE ? OR client LIKE ? ORDER BY created_at DESC`
)

// Project role queries
const (
	qRoleInsert = `INSERT INTO ` + roleTable +
		` (` + roleColumns + `) VALUES (?, ?, ?, ?, ?)`

	qRoleDelete = `DELETE FROM ` + roleTable + ` WHERE id = ?`

	qRolesAll = `SELECT ` + roleColumns + ` FROM ` + roleTable + ` ORDER BY project_id, role`

	qRolesByProject = `SELECT ` + roleColumns + ` FROM ` + roleTable + ` WHERE project_id = ? ORDER BY role`
)

// Allocation queries
const (
	qAllocationInsert = `INSERT INTO ` + allocationTable +
		` (` + allocationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	qAllocationUpdate = `UPDATE ` + allocationTable +
		` SET project_id=?, user_id=?, role_id=?, start_date=?, end_date=?, percentage=? WHERE id=?`

	qAllocationDelete = `DELETE FROM ` + allocationTable + ` WHERE id = ?`

	qAllocationsAll = `SELECT ` + allocationColumns + ` FROM ` + allocationTable + ` ORDER BY start_date`
)

// Time entry queries
const (
	qEntryInsert = `INSERT INTO ` + entryTable +
		` (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	qEntryByID = `SELECT ` + entryColumns + ` FROM ` + entryTable + ` WHERE id = ?`

	qEntryUpdate = `UPDATE ` + entryTable +
		` SET project_id=?, user_id=?, entry_date=?, hours=?, description=?, status=?, tags=?, billable=? WHERE id=?`

	qEntrySetStatus = `UPDATE ` + entryTable + ` SET status=? WHERE id=?`

	qEntryDelete = `DELETE FROM ` + entryTable + ` WHERE id = ?`

	qEntriesAll = `SELECT ` + entryColumns + ` FROM ` + entryTable + ` ORDER BY entry_date`
)
