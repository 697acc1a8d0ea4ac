// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/MKhiriev/go-replica-sync/models"
)

// profilesDocument is the TOML layout of an exported profile set:
//
//	[profiles.photos]
//	root_a = "/home/me/photos"
//	root_b = "https://nas:8443"
//	ignore = ["*.tmp"]
type profilesDocument struct {
	Profiles map[string]models.Profile `toml:"profiles"`
}

// ImportTOML decodes a profile document. Profile names come from the table
// keys; every profile is validated. The result is ordered by name.
func ImportTOML(r io.Reader) ([]models.Profile, error) {
	var doc profilesDocument
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingProfile, err)
	}

	profiles := make([]models.Profile, 0, len(doc.Profiles))
	for name, p := range doc.Profiles {
		p.Name = name
		if err := p.Validate(); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })

	return profiles, nil
}

// ExportTOML writes profiles as one document readable by ImportTOML.
func ExportTOML(w io.Writer, profiles []models.Profile) error {
	doc := profilesDocument{Profiles: make(map[string]models.Profile, len(profiles))}
	for _, p := range profiles {
		doc.Profiles[p.Name] = p
	}

	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return nil
}
