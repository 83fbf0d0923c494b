package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/sanctuary-go/internal/domain/catalog"
	"github.com/andrescamacho/sanctuary-go/internal/domain/expedition"
	"github.com/andrescamacho/sanctuary-go/internal/domain/garden"
	"github.com/andrescamacho/sanctuary-go/internal/domain/guild"
	"github.com/andrescamacho/sanctuary-go/internal/domain/inventory"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// GormPlayerRepository implements PlayerRepository and UnitOfWork using GORM.
// The player row and every child row are written in one database transaction.
type GormPlayerRepository struct {
	db *gorm.DB
}

// NewGormPlayerRepository creates a new GORM player repository
func NewGormPlayerRepository(db *gorm.DB) *GormPlayerRepository {
	return &GormPlayerRepository{db: db}
}

// FindByID retrieves a player with all owned entities
func (r *GormPlayerRepository) FindByID(ctx context.Context, playerID shared.PlayerID) (*player.Player, error) {
	return r.load(r.db.WithContext(ctx), playerID, false)
}

// FindByName retrieves a player by its unique name
func (r *GormPlayerRepository) FindByName(ctx context.Context, name string) (*player.Player, error) {
	var model PlayerModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &player.NotFoundError{Key: name}
		}
		return nil, fmt.Errorf("failed to find player: %w", result.Error)
	}

	return r.loadChildren(r.db.WithContext(ctx), &model)
}

// ListSummaries reads the players table only, ordered by id
func (r *GormPlayerRepository) ListSummaries(ctx context.Context) ([]player.Summary, error) {
	var models []PlayerModel
	result := r.db.WithContext(ctx).
		Select("id", "name", "currency", "total_xp", "created_at").
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list players: %w", result.Error)
	}

	summaries := make([]player.Summary, 0, len(models))
	for _, m := range models {
		id, err := shared.NewPlayerID(m.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid player ID in database: %w", err)
		}
		summaries = append(summaries, player.Summary{
			ID:        id,
			Name:      m.Name,
			Currency:  m.Currency,
			TotalXP:   m.TotalXP,
			CreatedAt: m.CreatedAt,
		})
	}

	return summaries, nil
}

// Add persists a new player with its starting inventory and assigns its ID
func (r *GormPlayerRepository) Add(ctx context.Context, p *player.Player) error {
	if !p.ID.IsZero() {
		return fmt.Errorf("player %s already persisted", p.ID)
	}

	model, err := playerToModel(p)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to add player: %w", err)
		}

		id, err := shared.NewPlayerID(model.ID)
		if err != nil {
			return err
		}
		p.ID = id

		return saveChildren(tx, p)
	})
	if err != nil {
		p.ID = shared.PlayerID{}
		return err
	}

	p.MarkCommitted()
	return nil
}

// Delete removes the player and cascades to every owned row
func (r *GormPlayerRepository) Delete(ctx context.Context, playerID shared.PlayerID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id := playerID.Value()
		for _, model := range []interface{}{
			&TransactionModel{},
			&ActiveExpeditionModel{},
			&GuildMemberModel{},
			&PlantedGrowableModel{},
			&InventoryStackModel{},
		} {
			if err := tx.Where("player_id = ?", id).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete player rows: %w", err)
			}
		}

		result := tx.Delete(&PlayerModel{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete player: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return &player.NotFoundError{Key: playerID.String()}
		}
		return nil
	})
}

// operationError marks an error returned by the caller's fn so Execute can
// tell it apart from a persistence failure after the rollback
type operationError struct {
	err error
}

func (e *operationError) Error() string { return e.err.Error() }

// Execute loads the player, runs fn, and commits every change fn made in one
// database transaction. Errors from fn (and a missing player) are returned
// unchanged after rollback; persistence failures become TransactionFailedError.
// The player row is read with SELECT ... FOR UPDATE, so units of work from other
// processes on the same player wait for this one to finish. SQLite has no row
// locks; its database-level write lock makes the losing commit fail instead.
func (r *GormPlayerRepository) Execute(ctx context.Context, playerID shared.PlayerID, fn func(ctx context.Context, p *player.Player) error) error {
	var loaded *player.Player

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := r.load(tx, playerID, true)
		if err != nil {
			var notFound *player.NotFoundError
			if errors.As(err, &notFound) {
				return &operationError{err: err}
			}
			return err
		}

		if err := fn(ctx, p); err != nil {
			return &operationError{err: err}
		}

		if err := saveAggregate(tx, p); err != nil {
			return err
		}
		loaded = p
		return nil
	})

	if err != nil {
		var opErr *operationError
		if errors.As(err, &opErr) {
			return opErr.err
		}
		return shared.NewTransactionFailedError("commit", err)
	}

	loaded.MarkCommitted()
	return nil
}

func (r *GormPlayerRepository) load(db *gorm.DB, playerID shared.PlayerID, forUpdate bool) (*player.Player, error) {
	var model PlayerModel
	query := db
	if forUpdate {
		query = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	result := query.Where("id = ?", playerID.Value()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &player.NotFoundError{Key: playerID.String()}
		}
		return nil, fmt.Errorf("failed to find player: %w", result.Error)
	}

	return r.loadChildren(db, &model)
}

func (r *GormPlayerRepository) loadChildren(db *gorm.DB, model *PlayerModel) (*player.Player, error) {
	p, err := modelToPlayer(model)
	if err != nil {
		return nil, err
	}
	id := model.ID

	var stacks []InventoryStackModel
	if err := db.Where("player_id = ?", id).Find(&stacks).Error; err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	domainStacks := make([]inventory.Stack, 0, len(stacks))
	for _, s := range stacks {
		domainStacks = append(domainStacks, inventory.Stack{ItemID: s.ItemID, Quantity: s.Quantity})
	}
	p.Inventory = inventory.ReconstructLedger(domainStacks)

	var growables []PlantedGrowableModel
	if err := db.Where("player_id = ?", id).Order("planted_at ASC").Find(&growables).Error; err != nil {
		return nil, fmt.Errorf("failed to load growables: %w", err)
	}
	for _, g := range growables {
		p.Growables = append(p.Growables, &garden.PlantedGrowable{
			ID:           g.ID,
			Kind:         catalog.PlantableKind(g.Kind),
			DefinitionID: g.DefinitionID,
			PlantedAt:    g.PlantedAt,
		})
	}

	var members []GuildMemberModel
	if err := db.Where("player_id = ?", id).Order("id ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to load guild members: %w", err)
	}
	for _, m := range members {
		p.GuildMembers = append(p.GuildMembers, &guild.Member{
			ID:           m.ID,
			Name:         m.Name,
			Role:         guild.Role(m.Role),
			Level:        m.Level,
			OnExpedition: m.OnExpedition,
		})
	}

	var expeditions []ActiveExpeditionModel
	if err := db.Where("player_id = ?", id).Order("end_time ASC").Find(&expeditions).Error; err != nil {
		return nil, fmt.Errorf("failed to load expeditions: %w", err)
	}
	for _, e := range expeditions {
		var memberIDs []string
		if err := json.Unmarshal([]byte(e.MemberIDs), &memberIDs); err != nil {
			return nil, fmt.Errorf("invalid member ids for expedition %s: %w", e.ID, err)
		}
		p.Expeditions = append(p.Expeditions, &expedition.ActiveExpedition{
			ID:           e.ID,
			DefinitionID: e.DefinitionID,
			MemberIDs:    memberIDs,
			StartTime:    e.StartTime,
			EndTime:      e.EndTime,
		})
	}

	return p, nil
}

// saveAggregate writes the player row and all child rows of a loaded aggregate
func saveAggregate(tx *gorm.DB, p *player.Player) error {
	skillXP, err := marshalSkillXP(p.SkillXP)
	if err != nil {
		return err
	}

	result := tx.Model(&PlayerModel{}).Where("id = ?", p.ID.Value()).Updates(map[string]interface{}{
		"name":       p.Name,
		"currency":   p.Currency,
		"total_xp":   p.TotalXP,
		"skill_xp":   skillXP,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update player: %w", result.Error)
	}

	if err := deleteRemoved(tx, p); err != nil {
		return err
	}
	return saveChildren(tx, p)
}

// deleteRemoved turns the aggregate's end-of-life signals into row deletes
func deleteRemoved(tx *gorm.DB, p *player.Player) error {
	id := p.ID.Value()
	for _, ref := range p.DeletedEntities() {
		var err error
		switch ref.Kind {
		case player.EntityKindInventoryStack:
			err = tx.Where("player_id = ? AND item_id = ?", id, ref.ID).Delete(&InventoryStackModel{}).Error
		case player.EntityKindPlantedGrowable:
			err = tx.Where("player_id = ? AND id = ?", id, ref.ID).Delete(&PlantedGrowableModel{}).Error
		case player.EntityKindExpedition:
			err = tx.Where("player_id = ? AND id = ?", id, ref.ID).Delete(&ActiveExpeditionModel{}).Error
		default:
			err = fmt.Errorf("unknown entity kind %q", ref.Kind)
		}
		if err != nil {
			return fmt.Errorf("failed to delete %s %s: %w", ref.Kind, ref.ID, err)
		}
	}
	return nil
}

// saveChildren upserts current child rows and appends pending ledger transactions
func saveChildren(tx *gorm.DB, p *player.Player) error {
	id := p.ID.Value()

	for _, s := range p.Inventory.Stacks() {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}, {Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).Create(&InventoryStackModel{PlayerID: id, ItemID: s.ItemID, Quantity: s.Quantity}).Error
		if err != nil {
			return fmt.Errorf("failed to save inventory stack %s: %w", s.ItemID, err)
		}
	}

	for _, g := range p.Growables {
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&PlantedGrowableModel{
			ID:           g.ID,
			PlayerID:     id,
			Kind:         g.Kind.String(),
			DefinitionID: g.DefinitionID,
			PlantedAt:    g.PlantedAt,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to save growable %s: %w", g.ID, err)
		}
	}

	for _, m := range p.GuildMembers {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "level", "on_expedition"}),
		}).Create(&GuildMemberModel{
			ID:           m.ID,
			PlayerID:     id,
			Name:         m.Name,
			Role:         m.Role.String(),
			Level:        m.Level,
			OnExpedition: m.OnExpedition,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to save guild member %s: %w", m.ID, err)
		}
	}

	for _, e := range p.Expeditions {
		memberIDs, err := json.Marshal(e.MemberIDs)
		if err != nil {
			return fmt.Errorf("failed to marshal member ids: %w", err)
		}
		err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ActiveExpeditionModel{
			ID:           e.ID,
			PlayerID:     id,
			DefinitionID: e.DefinitionID,
			MemberIDs:    string(memberIDs),
			StartTime:    e.StartTime,
			EndTime:      e.EndTime,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to save expedition %s: %w", e.ID, err)
		}
	}

	for _, t := range p.PendingTransactions() {
		if err := tx.Create(transactionToModel(t)).Error; err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}
	}

	return nil
}

func modelToPlayer(model *PlayerModel) (*player.Player, error) {
	playerID, err := shared.NewPlayerID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID in database: %w", err)
	}

	p := player.NewPlayer(playerID, model.Name, model.Currency, model.CreatedAt)
	p.TotalXP = model.TotalXP

	if model.SkillXP != "" {
		if err := json.Unmarshal([]byte(model.SkillXP), &p.SkillXP); err != nil {
			return nil, fmt.Errorf("invalid skill xp for player %d: %w", model.ID, err)
		}
	}

	return p, nil
}

func playerToModel(p *player.Player) (*PlayerModel, error) {
	skillXP, err := marshalSkillXP(p.SkillXP)
	if err != nil {
		return nil, err
	}

	return &PlayerModel{
		ID:        p.ID.Value(),
		Name:      p.Name,
		Currency:  p.Currency,
		TotalXP:   p.TotalXP,
		SkillXP:   skillXP,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.CreatedAt,
	}, nil
}

func marshalSkillXP(skillXP map[string]int) (string, error) {
	if len(skillXP) == 0 {
		return "{}", nil
	}

	bytes, err := json.Marshal(skillXP)
	if err != nil {
		return "", fmt.Errorf("failed to marshal skill xp: %w", err)
	}
	return string(bytes), nil
}
