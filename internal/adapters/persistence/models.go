package persistence

import (
	"time"
)

// PlayerModel represents the players table
type PlayerModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;unique;not null"`
	Currency  int       `gorm:"column:currency;not null;default:0"`
	TotalXP   int       `gorm:"column:total_xp;not null;default:0"`
	SkillXP   string    `gorm:"column:skill_xp;type:text"` // JSON object as text
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PlayerModel) TableName() string {
	return "players"
}

// InventoryStackModel represents the inventory_stacks table; one row per (player, item)
type InventoryStackModel struct {
	PlayerID int    `gorm:"column:player_id;primaryKey"`
	ItemID   string `gorm:"column:item_id;primaryKey"`
	Quantity int    `gorm:"column:quantity;not null"`
}

func (InventoryStackModel) TableName() string {
	return "inventory_stacks"
}

// PlantedGrowableModel represents the planted_growables table
type PlantedGrowableModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	PlayerID     int       `gorm:"column:player_id;not null;index"`
	Kind         string    `gorm:"column:kind;not null"`
	DefinitionID string    `gorm:"column:definition_id;not null"`
	PlantedAt    time.Time `gorm:"column:planted_at;not null"`
}

func (PlantedGrowableModel) TableName() string {
	return "planted_growables"
}

// GuildMemberModel represents the guild_members table
type GuildMemberModel struct {
	ID           string `gorm:"column:id;primaryKey"`
	PlayerID     int    `gorm:"column:player_id;not null;index"`
	Name         string `gorm:"column:name;not null"`
	Role         string `gorm:"column:role;not null"`
	Level        int    `gorm:"column:level;not null;default:1"`
	OnExpedition bool   `gorm:"column:on_expedition;not null;default:false"`
}

func (GuildMemberModel) TableName() string {
	return "guild_members"
}

// ActiveExpeditionModel represents the active_expeditions table
type ActiveExpeditionModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	PlayerID     int       `gorm:"column:player_id;not null;index"`
	DefinitionID string    `gorm:"column:definition_id;not null"`
	MemberIDs    string    `gorm:"column:member_ids;type:text;not null"` // JSON array as text
	StartTime    time.Time `gorm:"column:start_time;not null"`
	EndTime      time.Time `gorm:"column:end_time;not null;index"`
}

func (ActiveExpeditionModel) TableName() string {
	return "active_expeditions"
}

// TransactionModel represents the transactions table (currency ledger)
type TransactionModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	PlayerID          int       `gorm:"column:player_id;not null;index:idx_transactions_player_time"`
	Timestamp         time.Time `gorm:"column:timestamp;not null;index:idx_transactions_player_time"`
	TransactionType   string    `gorm:"column:transaction_type;not null"`
	Category          string    `gorm:"column:category;not null"`
	Amount            int       `gorm:"column:amount;not null"`
	BalanceBefore     int       `gorm:"column:balance_before;not null"`
	BalanceAfter      int       `gorm:"column:balance_after;not null"`
	Description       string    `gorm:"column:description"`
	RelatedEntityType string    `gorm:"column:related_entity_type"`
	RelatedEntityID   string    `gorm:"column:related_entity_id"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// AllModels lists every model for AutoMigrate, parents first
func AllModels() []interface{} {
	return []interface{}{
		&PlayerModel{},
		&InventoryStackModel{},
		&PlantedGrowableModel{},
		&GuildMemberModel{},
		&ActiveExpeditionModel{},
		&TransactionModel{},
	}
}
