package repos

import (
	"zarika/internal/domain"

	"github.com/jmoiron/sqlx"
)

type HeroRepo struct{ db *sqlx.DB }

func NewHeroRepo(db *sqlx.DB) *HeroRepo { return &HeroRepo{db: db} }

func (r *HeroRepo) ListActive() ([]domain.HeroSlide, error) {
	out := []domain.HeroSlide{}
	err := r.db.Select(&out, `
	  SELECT id, title, COALESCE(subtitle,'') AS subtitle, image,
	         COALESCE(cta_text,'') AS cta_text, COALESCE(cta_link,'') AS cta_link,
	         position, is_active, created_at
	  FROM hero_slides
	  WHERE is_active = 1
	  ORDER BY position
	`)
	return out, err
}

func (r *HeroRepo) ListAll() ([]domain.HeroSlide, error) {
	out := []domain.HeroSlide{}
	err := r.db.Select(&out, `
	  SELECT id, title, COALESCE(subtitle,'') AS subtitle, image,
	         COALESCE(cta_text,'') AS cta_text, COALESCE(cta_link,'') AS cta_link,
	         position, is_active, created_at
	  FROM hero_slides
	  ORDER BY position
	`)
	return out, err
}

func (r *HeroRepo) Create(s domain.HeroSlide) error {
	_, err := r.db.Exec(`
	  INSERT INTO hero_slides(id,title,subtitle,image,cta_text,cta_link,position,is_active,created_at)
	  VALUES(?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, s.ID, s.Title, s.Subtitle, s.Image, s.CTAText, s.CTALink, s.Position, s.IsActive)
	return err
}

func (r *HeroRepo) Update(s domain.HeroSlide) error {
	_, err := r.db.Exec(`
	  UPDATE hero_slides
	  SET title=?, subtitle=?, image=?, cta_text=?, cta_link=?, position=?, is_active=?
	  WHERE id=?
	`, s.Title, s.Subtitle, s.Image, s.CTAText, s.CTALink, s.Position, s.IsActive, s.ID)
	return err
}

func (r *HeroRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM hero_slides WHERE id=?`, id)
	return err
}
