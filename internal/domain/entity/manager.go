package entity

import "time"

// Roles válidos para Manager.
const (
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Estados de cuenta. restricted puede autenticarse y leer, pero no modificar el catálogo;
// blocked no puede autenticarse.
const (
	ManagerStatusActive     = "active"
	ManagerStatusRestricted = "restricted"
	ManagerStatusBlocked    = "blocked"
)

// Manager representa una cuenta que administra el catálogo.
type Manager struct {
	ID           string
	Firstname    string
	Lastname     string
	Email        string // único, en minúsculas
	PhoneNumber  string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // manager, admin
	Status       string // active, restricted, blocked
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanWrite indica si la cuenta puede modificar el catálogo.
func (m *Manager) CanWrite() bool {
	return m.Status != ManagerStatusRestricted && m.Status != ManagerStatusBlocked
}

// Ref devuelve el subconjunto publicable del manager (sin credencial).
func (m *Manager) Ref() *ManagerRef {
	if m == nil {
		return nil
	}
	return &ManagerRef{ID: m.ID, Firstname: m.Firstname, Lastname: m.Lastname, Email: m.Email}
}

// ManagerRef es la vista poblada de un manager dentro de productos e historial:
// identificador, nombre visible y email. Nunca incluye la credencial.
type ManagerRef struct {
	ID        string
	Firstname string
	Lastname  string
	Email     string
}

// ManagerRefFields campos permitidos al poblar referencias a managers.
var ManagerRefFields = []string{"id", "firstname", "lastname", "email"}
