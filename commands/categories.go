package commands

// Categories used by the built-in modules.
const (
	CategoryInfo      = "Info"
	CategorySuperUser = "SuperUser"
)

// HiddenCategories are never shown in the public command list.
var HiddenCategories = []string{CategorySuperUser}
