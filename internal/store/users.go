package store

type UserRepository struct {
	env  *env
	rows *table[User]
}

func (r *UserRepository) FindAll() []User {
	return r.rows.all()
}

func (r *UserRepository) FindByID(id string) (User, bool) {
	return r.rows.first(func(u User) bool { return u.ID == id })
}

// FindByEmail returns every user with the given email. Emails are not unique.
func (r *UserRepository) FindByEmail(email string) []User {
	return r.rows.filter(func(u User) bool { return u.Email == email })
}

func (r *UserRepository) Create(item User) (User, error) {
	if item.Email == "" {
		return User{}, missing("user", "email")
	}
	if item.Password == "" {
		return User{}, missing("user", "password")
	}
	if item.ID == "" {
		item.ID = r.env.newID()
	}
	return r.rows.insert(item)[0], nil
}

func (r *UserRepository) Update(id string, patch UserPatch) (User, bool) {
	return r.rows.modify(func(u User) bool { return u.ID == id }, func(u *User) {
		if patch.Email != nil {
			u.Email = *patch.Email
		}
		if patch.Password != nil {
			u.Password = *patch.Password
		}
	})
}

func (r *UserRepository) Delete(id string) (User, bool) {
	return r.rows.removeFirst(func(u User) bool { return u.ID == id })
}
