package models

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` // hash bcrypt, jamais le mot de passe en clair
	IsAdmin  bool   `json:"is_admin"`
}
