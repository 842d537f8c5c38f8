package persist

import (
	"context"
	"encoding/json"

	"github.com/chrozal/mudcore/internal/model"
)

type ItemRepo struct {
	db *DB
}

func NewItemRepo(db *DB) *ItemRepo {
	return &ItemRepo{db: db}
}

func ownerSlot(o model.Owner) int16 {
	if o.Kind != model.OwnerEquipment {
		return -1
	}
	return int16(o.Slot)
}

// Save upserts a single item instance. Its only caller is
// PersistenceSystem.SaveDirty, which saves every live item instance in each
// persist phase; ownership or condition changes are not saved on their own.
func (r *ItemRepo) Save(ctx context.Context, inst *model.ItemInstance) error {
	statsJSON, err := json.Marshal(inst.Stats)
	if err != nil {
		return err
	}
	contents := inst.ContainerContents
	if contents == nil {
		contents = []model.ItemInstanceID{}
	}
	contentsJSON, err := json.Marshal(contents)
	if err != nil {
		return err
	}
	_, err = r.db.Pool.Exec(ctx,
		`INSERT INTO item_instances (id, template_id, condition, stats, owner_kind, owner_id, owner_slot, container_contents)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (id) DO UPDATE SET
		   template_id = EXCLUDED.template_id, condition = EXCLUDED.condition, stats = EXCLUDED.stats,
		   owner_kind = EXCLUDED.owner_kind, owner_id = EXCLUDED.owner_id, owner_slot = EXCLUDED.owner_slot,
		   container_contents = EXCLUDED.container_contents`,
		int64(inst.ID), inst.TemplateID, inst.Condition, statsJSON,
		int16(inst.Owner.Kind), inst.Owner.ID, ownerSlot(inst.Owner), contentsJSON,
	)
	return err
}

func (r *ItemRepo) Delete(ctx context.Context, id model.ItemInstanceID) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM item_instances WHERE id = $1`, int64(id))
	return err
}

// LoadAll restores every persisted item instance at boot, in id order so
// containers (which reference child ids) are encountered after their
// children whenever the owning process always created children first.
func (r *ItemRepo) LoadAll(ctx context.Context) ([]*model.ItemInstance, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, template_id, condition, stats, owner_kind, owner_id, owner_slot, container_contents
		 FROM item_instances ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.ItemInstance
	for rows.Next() {
		var id int64
		var ownerKind, ownerSlotVal int16
		var ownerID int64
		var statsJSON, contentsJSON []byte
		inst := &model.ItemInstance{}
		if err := rows.Scan(&id, &inst.TemplateID, &inst.Condition, &statsJSON,
			&ownerKind, &ownerID, &ownerSlotVal, &contentsJSON); err != nil {
			return nil, err
		}
		inst.ID = model.ItemInstanceID(id)
		_ = json.Unmarshal(statsJSON, &inst.Stats)
		_ = json.Unmarshal(contentsJSON, &inst.ContainerContents)
		inst.Owner = model.Owner{Kind: model.OwnerKind(ownerKind), ID: ownerID}
		if ownerKind == int16(model.OwnerEquipment) {
			inst.Owner.Slot = model.Slot(ownerSlotVal)
		}
		result = append(result, inst)
	}
	return result, rows.Err()
}
