package usecase

import "github.com/jhoicas/nexus-inventory/internal/domain/entity"

// MetaUseCase información pública del servidor.
type MetaUseCase struct {
	appName string
	clock   Clock
}

// NewMetaUseCase construye el caso de uso.
func NewMetaUseCase(appName string) *MetaUseCase {
	return &MetaUseCase{appName: appName, clock: defaultClock}
}

// Get devuelve el nombre de la app y la hora del servidor.
func (uc *MetaUseCase) Get() entity.Meta {
	return entity.Meta{AppName: uc.appName, ServerTime: uc.clock()}
}
