// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyAccessDenied      = "common.access_denied"
	KeyValidationInvalid = "validation.invalid"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Users
	KeyUserNotFound = "user.not_found"
	KeyUserUpdated  = "user.updated"
	KeyUserDeleted  = "user.deleted"

	// Designers
	KeyDesignerCreated  = "designer.created"
	KeyDesignerUpdated  = "designer.updated"
	KeyDesignerDeleted  = "designer.deleted"
	KeyDesignerNotFound = "designer.not_found"

	// Taxonomy
	KeyCategoryNotFound = "category.not_found"
	KeyTagNotFound      = "tag.not_found"
	KeySeasonNotFound   = "season.not_found"
	KeyMaterialNotFound = "material.not_found"
	KeyTaxonomyCreated  = "taxonomy.created"
	KeyTaxonomyUpdated  = "taxonomy.updated"
	KeyTaxonomyDeleted  = "taxonomy.deleted"
	KeyNameTaken        = "taxonomy.name_taken"

	// Clothing
	KeyClothingCreated     = "clothing.created"
	KeyClothingUpdated     = "clothing.updated"
	KeyClothingDeleted     = "clothing.deleted"
	KeyClothingPublished   = "clothing.published"
	KeyClothingNotFound    = "clothing.not_found"
	KeyStyleNumberTaken    = "clothing.style_number_taken"
	KeyClothingEditDenied  = "clothing.edit_denied"
	KeyDesignerProfileOnly = "clothing.designer_profile_only"

	// History
	KeyHistoryNotFound = "history.not_found"

	// Permissions
	KeyPermissionGranted  = "permission.granted"
	KeyPermissionUpdated  = "permission.updated"
	KeyPermissionRevoked  = "permission.revoked"
	KeyPermissionExists   = "permission.exists"
	KeyPermissionNotFound = "permission.not_found"

	// Uploads
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
)
