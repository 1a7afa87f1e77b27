package console

import "localesync/internal/domain"

// TranslateDomainError maps a domain error code to a user-facing message.
func TranslateDomainError(code string) string {
	switch code {
	case "reference_not_found":
		return "The reference locale file does not exist."
	case "malformed_document":
		return "The locale file is not a valid JSON object."
	case "empty_catalog":
		return "The locale catalog lists no target locales."
	case "invalid_locale_code":
		return "The catalog contains an invalid locale code."
	case "duplicate_locale":
		return "The catalog lists a locale more than once."
	case "reference_as_target":
		return "The reference locale cannot also be a target."
	case "working_doc_not_found":
		return "The working locale file does not exist."
	case "import_unsupported":
		return "Set DATABASE_URL to import overrides."
	case "unknown_locale":
		return "That locale is not in the catalog."
	default:
		return "Something went wrong."
	}
}

// DomainErrorMessage extracts the domain error code of err and resolves it
// to a user-facing message. It returns "" for errors outside the domain.
func DomainErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if code := domain.Code(err); code != "" {
		return TranslateDomainError(code)
	}
	return ""
}
