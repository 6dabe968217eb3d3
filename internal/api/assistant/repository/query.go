package assistantRepository

const (
	queryGetActivePages = `
		SELECT
			name,
			path,
			description,
			category,
			keywords,
			aliases,
			is_active,
			created_at,
			updated_at
		FROM navigation_pages
		WHERE is_active = TRUE
		ORDER BY created_at ASC
	`

	queryGetPageByPath = `
		SELECT
			name,
			path,
			description,
			category,
			keywords,
			aliases,
			is_active,
			created_at,
			updated_at
		FROM navigation_pages
		WHERE path = :path
	`

	queryCreatePage = `
		INSERT INTO navigation_pages (
			name,
			path,
			description,
			category,
			keywords,
			aliases,
			is_active,
			created_at,
			updated_at
		) VALUES (
			:name,
			:path,
			:description,
			:category,
			:keywords,
			:aliases,
			:is_active,
			:created_at,
			:updated_at
		)
	`

	queryUpdatePage = `
		UPDATE navigation_pages SET
			name = :name,
			description = :description,
			category = :category,
			keywords = :keywords,
			aliases = :aliases,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE path = :path
	`

	queryCreateCommand = `
		INSERT INTO assistant_commands (
			id,
			user_id,
			input,
			intent,
			confidence,
			target,
			year,
			response,
			created_at
		) VALUES (
			:id,
			:user_id,
			:input,
			:intent,
			:confidence,
			:target,
			:year,
			:response,
			:created_at
		)
	`

	queryGetCommandsByUserID = `
		SELECT
			id,
			user_id,
			input,
			intent,
			confidence,
			target,
			year,
			response,
			created_at
		FROM assistant_commands
		WHERE user_id = :user_id
		ORDER BY created_at DESC
		LIMIT :limit
	`

	queryCountCommandsByUserID = `
		SELECT COUNT(*) FROM assistant_commands WHERE user_id = :user_id
	`
)
