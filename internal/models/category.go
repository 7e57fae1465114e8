package models

// Category names accepted for a cost entry. Order matters: reports list
// categories in this order.
const (
	Food      = "Food"
	Health    = "Health"
	Housing   = "Housing"
	Sport     = "Sport"
	Education = "Education"
)

// Categories returns the fixed category set in report order.
func Categories() []string {
	return []string{Food, Health, Housing, Sport, Education}
}

// IsCategory reports whether name is one of the fixed categories.
func IsCategory(name string) bool {
	for _, c := range Categories() {
		if c == name {
			return true
		}
	}
	return false
}
