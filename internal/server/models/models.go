package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/vornexz/pay/internal/auth"
)

// TwoFactorMethod selects how a second factor is delivered
type TwoFactorMethod = string

const (
	TwoFactorNone  TwoFactorMethod = ""
	TwoFactorTOTP  TwoFactorMethod = "totp"
	TwoFactorEmail TwoFactorMethod = "email"
)

// User is the account model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role         string     `bun:"user_role,notnull" json:"user_role,omitempty"`
	FullName     string     `bun:"full_name,notnull" json:"full_name,omitempty"`
	Email        string     `bun:"email,notnull,unique" json:"email,omitempty"`
	CPF          string     `bun:"cpf,unique,nullzero" json:"cpf,omitempty"`
	RG           string     `bun:"rg" json:"rg,omitempty"`
	Phone        string     `bun:"phone_number" json:"phone_number,omitempty"`
	BirthDate    string     `bun:"birth_date" json:"birth_date,omitempty"`
	Address      string     `bun:"address" json:"address,omitempty"`
	City         string     `bun:"city" json:"city,omitempty"`
	State        string     `bun:"state" json:"state,omitempty"`
	ZipCode      string     `bun:"zip_code" json:"zip_code,omitempty"`
	PasswordHash string     `bun:"password_hash" json:"-"`
	Premium      bool       `bun:"is_premium" json:"is_premium,omitempty"`
	Balance      int64      `bun:"balance_cents" json:"balance_cents"`

	TwoFactorEnabled bool            `bun:"two_factor_enabled" json:"two_factor_enabled,omitempty"`
	TwoFactorMethod  TwoFactorMethod `bun:"two_factor_method" json:"two_factor_method,omitempty"`
	TOTPSecret       string          `bun:"totp_secret" json:"-"`
	BiometricEnabled bool            `bun:"biometric_enabled" json:"biometric_enabled,omitempty"`

	LoginAttempts  int        `bun:"login_attempts" json:"login_attempts,omitempty"`
	LoginAttemptAt *time.Time `bun:"login_attempt_at" json:"login_attempt_at,omitempty"`
	LoggedInAt     *time.Time `bun:"loggedin_at" json:"loggedin_at,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

func (u *User) AccountID() string                 { return u.ID.String() }
func (u *User) AccountEmail() string              { return u.Email }
func (u *User) AccountRole() auth.UserRole        { return u.Role }
func (u *User) AccountPremium() bool              { return u.Premium }
func (u *User) AccountPasswordHash() string       { return u.PasswordHash }
func (u *User) AccountLoginAttempts() int         { return u.LoginAttempts }
func (u *User) AccountLoginAttemptAt() *time.Time { return u.LoginAttemptAt }

var _ auth.AccountRecord = (*User)(nil)

// TransactionType is debit or credit
type TransactionType = string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Transaction is one wallet statement entry, amounts in cents
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:txn"`

	ID          uuid.UUID       `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID      uuid.UUID       `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User        *User           `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Type        TransactionType `bun:"tx_type,notnull" json:"tx_type,omitempty"`
	Description string          `bun:"description,notnull" json:"description,omitempty"`
	Category    string          `bun:"category" json:"category,omitempty"`
	AmountCents int64           `bun:"amount_cents,notnull" json:"amount_cents"`
	CreatedAt   *time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	DeletedAt   *time.Time      `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

// CardStatus is the lifecycle state of a card
type CardStatus = string

const (
	CardActive  CardStatus = "active"
	CardBlocked CardStatus = "blocked"
)

// Card is a payment card attached to a wallet
type Card struct {
	bun.BaseModel `bun:"table:cards,alias:crd"`

	ID         uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID     uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User       *User      `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Brand      string     `bun:"brand,notnull" json:"brand,omitempty"`
	LastFour   string     `bun:"last_four,notnull" json:"last_four,omitempty"`
	Holder     string     `bun:"holder" json:"holder,omitempty"`
	Expiry     string     `bun:"expiry" json:"expiry,omitempty"`
	LimitCents int64      `bun:"limit_cents" json:"limit_cents"`
	Status     CardStatus `bun:"status,notnull" json:"status,omitempty"`
	Virtual    bool       `bun:"is_virtual" json:"is_virtual,omitempty"`
	CreatedAt  *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	DeletedAt  *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

// Company is a holding portfolio entry managed through the CMS
type Company struct {
	bun.BaseModel `bun:"table:companies,alias:cmp"`

	ID          uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name        string     `bun:"name,notnull" json:"name,omitempty"`
	Segment     string     `bun:"segment" json:"segment,omitempty"`
	Description string     `bun:"description" json:"description,omitempty"`
	LogoURL     string     `bun:"logo_url" json:"logo_url,omitempty"`
	Website     string     `bun:"website" json:"website,omitempty"`
	SortOrder   int        `bun:"sort_order" json:"sort_order"`
	Active      bool       `bun:"is_active" json:"is_active"`
	CreatedAt   *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt   *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt   *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

// Section keys the CMS understands
const (
	SectionHero          = "hero"
	SectionAbout         = "about"
	SectionDifferentials = "differentials"
	SectionFooter        = "footer"
)

// ContentSection is one editable block of the public site
type ContentSection struct {
	bun.BaseModel `bun:"table:content_sections,alias:sec"`

	ID        uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Key       string         `bun:"section_key,notnull,unique" json:"section_key,omitempty"`
	Title     string         `bun:"title" json:"title,omitempty"`
	Subtitle  string         `bun:"subtitle" json:"subtitle,omitempty"`
	Body      map[string]any `bun:"body,type:jsonb" json:"body,omitempty"`
	UpdatedAt *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt *time.Time     `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

// SiteConfig is the singleton site configuration record
type SiteConfig struct {
	bun.BaseModel `bun:"table:site_config,alias:cfg"`

	ID           uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	SiteName     string         `bun:"site_name,notnull" json:"site_name,omitempty"`
	LogoURL      string         `bun:"logo_url" json:"logo_url,omitempty"`
	PrimaryColor string         `bun:"primary_color" json:"primary_color,omitempty"`
	ContactEmail string         `bun:"contact_email" json:"contact_email,omitempty"`
	Social       map[string]any `bun:"social,type:jsonb" json:"social,omitempty"`
	UpdatedAt    *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// EmailCode is a short lived one time code for email based 2FA
type EmailCode struct {
	bun.BaseModel `bun:"table:email_codes,alias:ecd"`

	ID        uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID    uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	Code      string     `bun:"code,notnull" json:"-"`
	ExpiresAt time.Time  `bun:"expires_at,notnull" json:"expires_at,omitempty"`
	UsedAt    *time.Time `bun:"used_at,nullzero" json:"used_at,omitempty"`
	CreatedAt *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
