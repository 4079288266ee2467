package scripter

// Catalog queries. Every query runs in the context of the target database.
// Objects flagged by SSMS as tooling support (database diagrams) are treated
// as system objects.

const notToolingSupport = `
	NOT EXISTS (
		SELECT 1 FROM sys.extended_properties ep
		WHERE ep.class = 1 AND ep.major_id = o.object_id AND ep.minor_id = 0
			AND ep.name = N'microsoft_database_tools_support')`

const (
	// queryDatabaseName finds the catalog name of a database, ignoring case.
	// Parameter @p1: database name as given by the user
	queryDatabaseName = `
		SELECT name FROM sys.databases WHERE UPPER(name) = UPPER(@p1)`

	// queryProcedures lists T-SQL stored procedures. CLR procedures have no
	// sys.sql_modules row and encrypted ones have a NULL definition.
	queryProcedures = `
		SELECT o.object_id, s.name, o.name, o.type, m.definition, ISNULL(m.uses_ansi_nulls, 0), ISNULL(m.uses_quoted_identifier, 0)
		FROM sys.procedures o
			INNER JOIN sys.schemas s ON s.schema_id = o.schema_id
			INNER JOIN sys.sql_modules m ON m.object_id = o.object_id
		WHERE o.is_ms_shipped = 0 AND m.definition IS NOT NULL AND` + notToolingSupport + `
		ORDER BY s.name, o.name`

	queryViews = `
		SELECT o.object_id, s.name, o.name, o.type, m.definition, ISNULL(m.uses_ansi_nulls, 0), ISNULL(m.uses_quoted_identifier, 0)
		FROM sys.views o
			INNER JOIN sys.schemas s ON s.schema_id = o.schema_id
			INNER JOIN sys.sql_modules m ON m.object_id = o.object_id
		WHERE o.is_ms_shipped = 0 AND m.definition IS NOT NULL AND` + notToolingSupport + `
		ORDER BY s.name, o.name`

	// queryFunctions lists scalar (FN), inline table-valued (IF) and
	// multi-statement table-valued (TF) functions. CLR types FS and FT are excluded.
	queryFunctions = `
		SELECT o.object_id, s.name, o.name, o.type, m.definition, ISNULL(m.uses_ansi_nulls, 0), ISNULL(m.uses_quoted_identifier, 0)
		FROM sys.objects o
			INNER JOIN sys.schemas s ON s.schema_id = o.schema_id
			INNER JOIN sys.sql_modules m ON m.object_id = o.object_id
		WHERE o.type IN ('FN', 'IF', 'TF') AND o.is_ms_shipped = 0 AND m.definition IS NOT NULL AND` + notToolingSupport + `
		ORDER BY s.name, o.name`

	// queryObjectPermissions lists object-level GRANT and DENY entries.
	// Column-level permissions (minor_id <> 0) are not scripted.
	queryObjectPermissions = `
		SELECT p.major_id, p.state, p.permission_name, pr.name
		FROM sys.database_permissions p
			INNER JOIN sys.database_principals pr ON pr.principal_id = p.grantee_principal_id
		WHERE p.class = 1 AND p.minor_id = 0 AND p.state IN ('G', 'D', 'W')
		ORDER BY p.major_id, p.state, p.permission_name, pr.name`

	queryTables = `
		SELECT o.object_id, s.name, o.name, ISNULL(o.uses_ansi_nulls, 1)
		FROM sys.tables o
			INNER JOIN sys.schemas s ON s.schema_id = o.schema_id
		WHERE o.is_ms_shipped = 0 AND` + notToolingSupport + `
		ORDER BY s.name, o.name`

	queryColumns = `
		SELECT c.object_id, c.name, ty.name, SCHEMA_NAME(ty.schema_id), ty.is_user_defined,
			c.max_length, c.precision, c.scale, c.is_nullable,
			c.is_identity, CAST(ic.seed_value AS bigint), CAST(ic.increment_value AS bigint),
			cc.definition, ISNULL(cc.is_persisted, 0)
		FROM sys.columns c
			INNER JOIN sys.tables t ON t.object_id = c.object_id
			INNER JOIN sys.types ty ON ty.user_type_id = c.user_type_id
			LEFT JOIN sys.identity_columns ic ON ic.object_id = c.object_id AND ic.column_id = c.column_id
			LEFT JOIN sys.computed_columns cc ON cc.object_id = c.object_id AND cc.column_id = c.column_id
		WHERE t.is_ms_shipped = 0
		ORDER BY c.object_id, c.column_id`

	queryDefaultConstraints = `
		SELECT d.parent_object_id, d.name, c.name, d.definition
		FROM sys.default_constraints d
			INNER JOIN sys.columns c ON c.object_id = d.parent_object_id AND c.column_id = d.parent_column_id
		ORDER BY d.parent_object_id, c.column_id`

	// queryIndexColumns lists the columns of primary keys, unique constraints
	// and plain rowstore indexes in key order, followed by included columns.
	queryIndexColumns = `
		SELECT i.object_id, i.index_id, i.name, i.is_primary_key, i.is_unique_constraint, i.is_unique,
			i.type_desc, ISNULL(i.filter_definition, ''), c.name, ic.is_descending_key, ic.is_included_column
		FROM sys.indexes i
			INNER JOIN sys.tables t ON t.object_id = i.object_id
			INNER JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id
			INNER JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
		WHERE t.is_ms_shipped = 0 AND i.type IN (1, 2) AND i.is_hypothetical = 0
		ORDER BY i.object_id, i.is_primary_key DESC, i.is_unique_constraint DESC, i.index_id,
			ic.is_included_column, ic.key_ordinal, ic.index_column_id`

	queryCheckConstraints = `
		SELECT k.parent_object_id, k.name, k.definition, k.is_not_trusted, k.is_disabled
		FROM sys.check_constraints k
		ORDER BY k.parent_object_id, k.name`

	queryForeignKeys = `
		SELECT fk.parent_object_id, fk.object_id, fk.name,
			SCHEMA_NAME(rt.schema_id), rt.name, pc.name, rc.name,
			fk.delete_referential_action_desc, fk.update_referential_action_desc,
			fk.is_not_trusted, fk.is_disabled
		FROM sys.foreign_keys fk
			INNER JOIN sys.tables rt ON rt.object_id = fk.referenced_object_id
			INNER JOIN sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id
			INNER JOIN sys.columns pc ON pc.object_id = fkc.parent_object_id AND pc.column_id = fkc.parent_column_id
			INNER JOIN sys.columns rc ON rc.object_id = fkc.referenced_object_id AND rc.column_id = fkc.referenced_column_id
		ORDER BY fk.parent_object_id, fk.name, fkc.constraint_column_id`

	queryTriggers = `
		SELECT tr.parent_id, m.definition, ISNULL(m.uses_ansi_nulls, 0), ISNULL(m.uses_quoted_identifier, 0)
		FROM sys.triggers tr
			INNER JOIN sys.sql_modules m ON m.object_id = tr.object_id
		WHERE tr.parent_class = 1 AND tr.is_ms_shipped = 0 AND m.definition IS NOT NULL
		ORDER BY tr.parent_id, tr.name`
)
