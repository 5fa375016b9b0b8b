package errs

// Category tags a classified error so callers can branch on it without inspecting messages.
type Category string

const (
	CategoryValidationMismatch Category = "VALIDATION_MISMATCH"
	CategoryValidationEmpty    Category = "VALIDATION_EMPTY"
	CategoryDuplicate          Category = "DB_DUPLICATE"
	CategoryForeignKey         Category = "DB_FOREIGN_KEY"
	CategoryTableNotFound      Category = "DB_TABLE_NOT_FOUND"
	CategoryFieldError         Category = "DB_FIELD_ERROR"
	CategoryConnection         Category = "DB_CONNECTION"
	CategoryQuery              Category = "DB_QUERY"
	CategoryUnknown            Category = "DB_UNKNOWN"

	// CategoryConfiguration is only produced while composing a database wrapper, never by classifying a
	// driver error.
	CategoryConfiguration Category = "CONFIGURATION"
)

// User-facing messages. They are safe to display and deliberately vague.
const (
	MessageInvalidParameters = "Invalid request parameters"
	MessageDuplicate         = "This record already exists"
	MessageUnprocessable     = "Unable to process request"
	MessageNotPermitted      = "Cannot perform this operation"
	MessageConnection        = "Unable to connect to database"
	MessageUnknown           = "Something went wrong. Please try again."
	MessageConfiguration     = "Database is not configured correctly"
)

func (c Category) String() string {
	return string(c)
}

// IsValidation reports whether the category is raised before any I/O happens.
func (c Category) IsValidation() bool {
	return c == CategoryValidationMismatch || c == CategoryValidationEmpty
}

// Categories lists every category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryValidationMismatch,
		CategoryValidationEmpty,
		CategoryDuplicate,
		CategoryForeignKey,
		CategoryTableNotFound,
		CategoryFieldError,
		CategoryConnection,
		CategoryQuery,
		CategoryUnknown,
		CategoryConfiguration,
	}
}
