package settings

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SettingsType string

const (
	SettingsTypeCompany SettingsType = "company"
)

// CompanyProfile is the letterhead block rendered into report headers
// and footers.
type CompanyProfile struct {
	Name         string `json:"name" bson:"name"`
	Address      string `json:"address" bson:"address"`
	Phone        string `json:"phone" bson:"phone"`
	Email        string `json:"email" bson:"email"`
	LogoURL      string `json:"logo_url" bson:"logo_url"`
	ReportFooter string `json:"report_footer" bson:"report_footer"`
}

type Settings struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Type      SettingsType       `json:"type" bson:"type"` // Unique index on type
	Company   *CompanyProfile    `json:"company,omitempty" bson:"company,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// DefaultCompanyProfile is what reports show before anyone has saved a
// profile.
func DefaultCompanyProfile() CompanyProfile {
	return CompanyProfile{
		Name: "My Company",
	}
}
