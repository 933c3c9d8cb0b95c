package domain

// FilingStatus represents the lifecycle state of an invoice or GST return
// inside the filing simulation.
type FilingStatus string

const (
	FilingStatusDraft     FilingStatus = "DRAFT"
	FilingStatusSubmitted FilingStatus = "SUBMITTED"
	FilingStatusFiled     FilingStatus = "FILED"
	FilingStatusRejected  FilingStatus = "REJECTED"
	FilingStatusCancelled FilingStatus = "CANCELLED"
)

// FilingEvent is a requested transition on the filing state machine.
type FilingEvent string

const (
	FilingEventSubmit FilingEvent = "submit"
	FilingEventFile   FilingEvent = "file"
	FilingEventReject FilingEvent = "reject"
	FilingEventCancel FilingEvent = "cancel"
)

// ReturnType identifies the statutory GST return form being simulated.
type ReturnType string

const (
	ReturnTypeGSTR1  ReturnType = "GSTR-1"
	ReturnTypeGSTR1A ReturnType = "GSTR-1A"
	ReturnTypeGSTR2  ReturnType = "GSTR-2"
	ReturnTypeGSTR3  ReturnType = "GSTR-3"
	ReturnTypeGSTR3B ReturnType = "GSTR-3B"
)

// KnownReturnTypes lists every supported return form.
var KnownReturnTypes = map[ReturnType]bool{
	ReturnTypeGSTR1:  true,
	ReturnTypeGSTR1A: true,
	ReturnTypeGSTR2:  true,
	ReturnTypeGSTR3:  true,
	ReturnTypeGSTR3B: true,
}

// TaxType classifies which tax regime applies to an invoice.
type TaxType string

const (
	TaxTypeIGST     TaxType = "IGST"
	TaxTypeCGSTSGST TaxType = "CGST+SGST"
)

// Difficulty grades a simulation scenario.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
)

// Unit is a unit of measurement on an invoice line item.
type Unit string

const (
	UnitPcs   Unit = "PCS"
	UnitNos   Unit = "NOS"
	UnitKg    Unit = "KG"
	UnitGram  Unit = "GM"
	UnitLitre Unit = "LTR"
	UnitMl    Unit = "ML"
	UnitMetre Unit = "MTR"
	UnitBox   Unit = "BOX"
	UnitDozen Unit = "DOZ"
	UnitSet   Unit = "SET"
	UnitPair  Unit = "PAIR"
	UnitBag   Unit = "BAG"
)

// KnownUnits lists every accepted unit of measurement.
var KnownUnits = map[Unit]bool{
	UnitPcs: true, UnitNos: true, UnitKg: true, UnitGram: true,
	UnitLitre: true, UnitMl: true, UnitMetre: true, UnitBox: true,
	UnitDozen: true, UnitSet: true, UnitPair: true, UnitBag: true,
}

// UserRole defines the role of a platform user.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleLearner UserRole = "learner"
)
