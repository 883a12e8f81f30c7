package storage

// User is the stored user record. Age is nil when it was never supplied.
type User struct {
	ID    int
	Name  string
	Email string
	Age   *int
}

// Post is the stored post record. UserID references User.ID.
type Post struct {
	ID      int
	Title   string
	Content string
	UserID  int
}

// Clone returns a copy that shares no memory with u.
func (u *User) Clone() *User {
	c := *u
	if u.Age != nil {
		age := *u.Age
		c.Age = &age
	}
	return &c
}
