package entity

// Profile is the read model behind GET /profile: the user's names and email
// joined with their contact details.
type Profile struct {
	UserID    uint
	Username  string
	Email     string
	FirstName string
	LastName  string
	Contact   ContactProfile
}

// Field is an optional column in an update. Set marks presence; a nil Value
// stores NULL.
type Field struct {
	Set   bool
	Value *string
}

// Update lists the profile columns to change. Nil names are left alone.
type Update struct {
	FirstName *string
	LastName  *string

	House    Field
	Street   Field
	Postcode Field
	City     Field
	Country  Field
}
