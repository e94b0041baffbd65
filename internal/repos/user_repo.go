package repos

import (
	"zarika/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT id,email,name,COALESCE(phone,'') AS phone,password_hash,role,created_at
	  FROM users WHERE LOWER(email)=LOWER(?)
	`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT id,email,name,COALESCE(phone,'') AS phone,password_hash,role,created_at
	  FROM users WHERE id=?
	`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u domain.User) error {
	_, err := r.DB.Exec(`
	  INSERT INTO users(id,email,name,phone,password_hash,role)
	  VALUES(?,?,?,?,?,?)
	`, u.ID, u.Email, u.Name, u.Phone, u.Hash, u.Role)
	return err
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`
	  INSERT INTO sessions(id,user_id,last_seen)
	  VALUES(?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP
	`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT u.id,u.email,u.name,COALESCE(u.phone,'') AS phone,u.password_hash,u.role,u.created_at
	  FROM sessions s
	  JOIN users u ON u.id=s.user_id
	  WHERE s.id=?
	`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

// CustomerRow backs the admin customers listing.
type CustomerRow struct {
	ID         string `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	Email      string `db:"email" json:"email"`
	Role       string `db:"role" json:"role"`
	OrderCount int    `db:"order_count" json:"orderCount"`
	CreatedAt  string `db:"created_at" json:"createdAt"`
}

func (r *UserRepo) ListCustomers() ([]CustomerRow, error) {
	out := []CustomerRow{}
	err := r.DB.Select(&out, `
	  SELECT u.id, u.name, u.email, u.role, COUNT(o.id) AS order_count, u.created_at
	  FROM users u
	  LEFT JOIN orders o ON o.user_id = u.id
	  GROUP BY u.id
	  ORDER BY datetime(u.created_at) DESC
	`)
	return out, err
}
