package kernel

// UserID is the username a person registers with. It identifies applicants
// and employees alike.
type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type CompanyID string

func NewCompanyID(id string) CompanyID { return CompanyID(id) }
func (c CompanyID) String() string     { return string(c) }
func (c CompanyID) IsEmpty() bool      { return string(c) == "" }
