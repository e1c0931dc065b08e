// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/pos-backoffice/internal/adapter"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/store"
)

type ClientServices struct {
	Session         *SessionManager
	UserService     ClientUserService
	RecoveryService ClientRecoveryService
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	session := NewSessionManager(serverAdapter, storages.CredentialRepository, logger)

	return &ClientServices{
		Session:         session,
		UserService:     NewClientUserService(serverAdapter, session, logger),
		RecoveryService: NewClientRecoveryService(serverAdapter, session, logger),
	}
}
