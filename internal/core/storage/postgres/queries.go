package postgres

// SQL for the document and layout stores.
// Documents are the host CMS's records stored whole in a JSONB column; the id and
// timestamp columns only exist for keys and indexes.

const (
	// queryCountDocuments is completed with a filter predicate by the documents adapter.
	queryCountDocuments = `
		SELECT COUNT(*)
		FROM documents
		WHERE collection = $1
		  AND %s
	`

	// querySelectDocuments is completed with a filter predicate and the placeholders
	// for the sort path, limit and offset.
	// NULLIF folds JSON null into SQL NULL so missing and null values sort last
	// in both directions.
	querySelectDocuments = `
		SELECT data
		FROM documents
		WHERE collection = $1
		  AND %s
		ORDER BY NULLIF(data #> %s::text[], 'null'::jsonb) %s NULLS LAST, id ASC
		LIMIT %s OFFSET %s
	`

	// queryGetLayout fetches one user's dashboard layout.
	queryGetLayout = `
		SELECT layout
		FROM dashboard_layouts
		WHERE user_id = $1
	`

	// queryUpsertLayout creates or replaces one user's dashboard layout.
	// The id is only used on insert; an existing row keeps its id.
	queryUpsertLayout = `
		INSERT INTO dashboard_layouts (id, user_id, layout, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			layout     = EXCLUDED.layout,
			updated_at = EXCLUDED.updated_at
		RETURNING layout
	`
)
