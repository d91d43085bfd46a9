package gekko

import (
	"github.com/google/uuid"
)

// AssetId names an asset owned outside the ECS, such as an off-screen image
// a camera renders into.
type AssetId string

func NewAssetId() AssetId {
	return AssetId(uuid.NewString())
}

func (id AssetId) Valid() bool {
	_, err := uuid.Parse(string(id))
	return err == nil
}
