package types

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Decimal fields persist as fixed-precision text but serialize as
	// plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type HousingStatus string

const (
	HousingStatusRTLH HousingStatus = "RTLH"
	HousingStatusRLH  HousingStatus = "RLH"
)

func (s HousingStatus) Valid() bool {
	return s == HousingStatusRTLH || s == HousingStatusRLH
}

type EligibilityCategory string

const (
	EligibilityPoor        EligibilityCategory = "POOR"
	EligibilityVeryPoor    EligibilityCategory = "VERY_POOR"
	EligibilityModerate    EligibilityCategory = "MODERATE"
	EligibilityNotEligible EligibilityCategory = "NOT_ELIGIBLE"
)

func (c EligibilityCategory) Valid() bool {
	switch c {
	case EligibilityPoor, EligibilityVeryPoor, EligibilityModerate, EligibilityNotEligible:
		return true
	}
	return false
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

func (v VerificationStatus) Valid() bool {
	return v == VerificationPending || v == VerificationVerified || v == VerificationRejected
}

// HousingRecord is one household's housing assessment. Coordinates are kept
// to 8 decimal places and monthly income to 2, both stored as decimal text.
type HousingRecord struct {
	ID                  string               `db:"id" json:"id"`
	HeadOfHousehold     string               `db:"head_of_household" json:"head_of_household"`
	NIK                 string               `db:"nik" json:"nik"`
	HousingStatus       HousingStatus        `db:"housing_status" json:"housing_status"`
	EligibilityCategory EligibilityCategory  `db:"eligibility_category" json:"eligibility_category"`
	VerificationStatus  VerificationStatus   `db:"verification_status" json:"verification_status"`
	DistrictID          string               `db:"district_id" json:"district_id"`
	VillageID           string               `db:"village_id" json:"village_id"`
	Latitude            *decimal.Decimal     `db:"latitude" json:"latitude"`
	Longitude           *decimal.Decimal     `db:"longitude" json:"longitude"`
	Address             string               `db:"address" json:"address"`
	Phone               *string              `db:"phone" json:"phone"`
	FamilyMembers       int                  `db:"family_members" json:"family_members"`
	MonthlyIncome       *decimal.Decimal     `db:"monthly_income" json:"monthly_income"`
	HouseConditionScore *int                 `db:"house_condition_score" json:"house_condition_score"`
	Notes               *string              `db:"notes" json:"notes"`
	VerifiedBy          *string              `db:"verified_by" json:"verified_by"`
	VerifiedAt          *time.Time           `db:"verified_at" json:"verified_at"`
	CreatedBy           string               `db:"created_by" json:"created_by"`
	CreatedAt           time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time            `db:"updated_at" json:"updated_at"`
}

type CreateHousingRecordInput struct {
	HeadOfHousehold     string              `json:"head_of_household" validate:"required"`
	NIK                 string              `json:"nik" validate:"required,len=16,numeric"`
	HousingStatus       HousingStatus       `json:"housing_status" validate:"required"`
	EligibilityCategory EligibilityCategory `json:"eligibility_category" validate:"required"`
	DistrictID          string              `json:"district_id" validate:"required"`
	VillageID           string              `json:"village_id" validate:"required"`
	Latitude            *decimal.Decimal    `json:"latitude"`
	Longitude           *decimal.Decimal    `json:"longitude"`
	Address             string              `json:"address" validate:"required"`
	Phone               *string             `json:"phone"`
	FamilyMembers       int                 `json:"family_members" validate:"required,gt=0"`
	MonthlyIncome       *decimal.Decimal    `json:"monthly_income"`
	HouseConditionScore *int                `json:"house_condition_score"`
	Notes               *string             `json:"notes"`
}

// UpdateHousingRecordInput is a partial update: absent fields are left
// unchanged, explicit nulls clear nullable fields.
type UpdateHousingRecordInput struct {
	HeadOfHousehold     Optional[string]              `json:"head_of_household"`
	HousingStatus       Optional[HousingStatus]       `json:"housing_status"`
	EligibilityCategory Optional[EligibilityCategory] `json:"eligibility_category"`
	DistrictID          Optional[string]              `json:"district_id"`
	VillageID           Optional[string]              `json:"village_id"`
	Latitude            Optional[decimal.Decimal]     `json:"latitude"`
	Longitude           Optional[decimal.Decimal]     `json:"longitude"`
	Address             Optional[string]              `json:"address"`
	Phone               Optional[string]              `json:"phone"`
	FamilyMembers       Optional[int]                 `json:"family_members"`
	MonthlyIncome       Optional[decimal.Decimal]     `json:"monthly_income"`
	HouseConditionScore Optional[int]                 `json:"house_condition_score"`
	Notes               Optional[string]              `json:"notes"`
}

// SignificantFields is the declared set of attributes whose change
// invalidates a prior verification. A record edited on any of these goes
// back to PENDING and must be re-verified.
var SignificantFields = []string{
	"head_of_household",
	"housing_status",
	"eligibility_category",
	"address",
	"family_members",
}

// TouchesSignificantField reports whether the update includes any member of
// SignificantFields.
func (u UpdateHousingRecordInput) TouchesSignificantField() bool {
	return u.HeadOfHousehold.Present ||
		u.HousingStatus.Present ||
		u.EligibilityCategory.Present ||
		u.Address.Present ||
		u.FamilyMembers.Present
}

type VerifyHousingRecordInput struct {
	Status VerificationStatus `json:"status" validate:"required"`
	Notes  *string            `json:"notes"`
}
