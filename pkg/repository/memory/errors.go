package memory

import "github.com/dealradar/dealradar/pkg/domain/model"

// ErrNotFound is returned when the requested record does not exist
var ErrNotFound = model.ErrNotFound
