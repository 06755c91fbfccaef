package service

import (
	"github.com/MKhiriev/go-diary/internal/adapter"
	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/entity"
	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/store"
)

// ClientServices groups the services of the sync client.
type ClientServices struct {
	Coordinator *Coordinator
	SyncJob     *SyncJob
}

// NewClientServices wires a coordinator replicating the entry and photo
// tables of localStore with remote.
func NewClientServices(localStore *store.LocalStore, remote adapter.RemoteService, cfg *config.ClientConfig, log *logger.Logger) *ClientServices {
	coordinator := NewCoordinator(localStore, remote, cfg.Sync, log,
		NewSessionFactory[entity.Entry](localStore.Entries(), entity.NewEntryCodec()),
		NewSessionFactory[entity.Photo](localStore.Photos(), entity.NewPhotoCodec(localStore.Files())),
	)

	return &ClientServices{
		Coordinator: coordinator,
		SyncJob:     NewSyncJob(coordinator, cfg.Workers.SyncInterval),
	}
}
