package db_models

type ProductType string

const (
	ProductPlan      ProductType = "plan"
	ProductTokenPack ProductType = "token_pack"
)

// Plan is a purchasable product: a subscription tier or a standalone
// token pack. ProductType decides whether a purchase resets the token
// balance (tier) or adds to it (pack).
type Plan struct {
	BaseModel
	Code           string `gorm:"uniqueIndex"` // e.g. "basic", "pro", "tokens_5000"
	Name           string
	PriceMinor     int64       // 9900 = ₩9,900
	Currency       string      `gorm:"size:3"`
	ProductType    ProductType `gorm:"type:varchar(16);index"`
	TokenAllotment int64
	ValidityDays   int32 `gorm:"default:30"` // ignored for token packs
	IsActive       bool  `gorm:"default:true"`
}
