// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

func ptr[T any](v T) *T { return &v }
