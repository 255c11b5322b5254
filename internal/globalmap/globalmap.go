package globalmap

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pfrederiksen/kzmaps/internal/globalapi"
	"github.com/pfrederiksen/kzmaps/internal/kz"
	"github.com/pfrederiksen/kzmaps/internal/logger"
	"github.com/pfrederiksen/kzmaps/internal/schnoseapi"
	"github.com/pfrederiksen/kzmaps/internal/timestamp"
)

const (
	filterStage    = 0
	filterTickrate = 128
	filterLimit    = 99999
)

// GlobalAPI is the subset of the GlobalAPI used by Fetch
type GlobalAPI interface {
	RecordFilters(ctx context.Context, params globalapi.RecordFilterParams) ([]globalapi.RecordFilter, error)
	Maps(ctx context.Context, validatedOnly bool) ([]globalapi.Map, error)
}

// SchnoseAPI is the subset of the SchnoseAPI used by Fetch
type SchnoseAPI interface {
	Maps(ctx context.Context, globalOnly bool) ([]schnoseapi.Map, error)
}

// Course is one course (stage) of a map
type Course struct {
	ID    int     `json:"id" yaml:"id"`
	Stage int     `json:"stage" yaml:"stage"`
	Tier  kz.Tier `json:"tier" yaml:"tier"`
}

// Mapper is a map author. SteamID is in SteamID64 form when the upstream
// value could be parsed, and verbatim otherwise.
type Mapper struct {
	Name    string `json:"name" yaml:"name"`
	SteamID string `json:"steam_id" yaml:"steam_id"`
}

// GlobalMap is the merged view of a KZ map
type GlobalMap struct {
	ID      uint16   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Tier    kz.Tier  `json:"tier" yaml:"tier"`
	Global  bool     `json:"global" yaml:"global"`
	Courses []Course `json:"courses" yaml:"courses"`

	// KZT, SKZ and VNL report whether the main course has a 128-tick
	// leaderboard in that mode
	KZT bool `json:"kzt" yaml:"kzt"`
	SKZ bool `json:"skz" yaml:"skz"`
	VNL bool `json:"vnl" yaml:"vnl"`

	Mappers         []Mapper            `json:"mappers" yaml:"mappers"`
	ApproverSteamID *string             `json:"approver_steam_id" yaml:"approver_steam_id"`
	Filesize        uint64              `json:"filesize" yaml:"filesize"`
	CreatedOn       timestamp.Timestamp `json:"created_on" yaml:"created_on"`
	UpdatedOn       timestamp.Timestamp `json:"updated_on" yaml:"updated_on"`
	WorkshopLink    *string             `json:"workshop_link" yaml:"workshop_link"`
}

// HasFilter reports whether the map's main course has a leaderboard in mode
func (m *GlobalMap) HasFilter(mode kz.Mode) bool {
	switch mode {
	case kz.ModeKZTimer:
		return m.KZT
	case kz.ModeSimpleKZ:
		return m.SKZ
	case kz.ModeVanilla:
		return m.VNL
	default:
		return false
	}
}

// KZGoLink returns the map's leaderboard on KZ:GO
func (m *GlobalMap) KZGoLink() string {
	return "https://kzgo.eu/maps/" + m.Name
}

// Thumbnail returns the map's thumbnail hosted by the Global Team on GitHub
func (m *GlobalMap) Thumbnail() string {
	return fmt.Sprintf("https://raw.githubusercontent.com/KZGlobalTeam/map-images/master/images/%s.jpg", m.Name)
}

// MapperProfiles returns the Steam profile link of each mapper
func (m *GlobalMap) MapperProfiles() []string {
	links := make([]string, 0, len(m.Mappers))
	for _, mapper := range m.Mappers {
		links = append(links, kz.SteamProfileURL(mapper.SteamID))
	}
	return links
}

// ApproverProfile returns the approver's Steam profile link, if the map has an approver
func (m *GlobalMap) ApproverProfile() (string, bool) {
	if m.ApproverSteamID == nil {
		return "", false
	}
	return kz.SteamProfileURL(*m.ApproverSteamID), true
}

// Fetch aggregates every map (or only validated maps) from both upstream APIs.
// The result holds one GlobalMap per map id, sorted by name.
func Fetch(ctx context.Context, validatedOnly bool, global GlobalAPI, schnose SchnoseAPI) ([]GlobalMap, error) {
	start := time.Now()
	stage, tickrate := filterStage, filterTickrate

	filters, err := timed("record_filters", func() ([]globalapi.RecordFilter, error) {
		return global.RecordFilters(ctx, globalapi.RecordFilterParams{
			Stages:    &stage,
			Tickrates: &tickrate,
			Limit:     filterLimit,
		})
	})
	if err != nil {
		return nil, upstreamError(APIGlobal, err)
	}

	schnoseMaps, err := timed("schnose_maps", func() ([]schnoseapi.Map, error) {
		return schnose.Maps(ctx, validatedOnly)
	})
	if err != nil {
		return nil, upstreamError(APISchnose, err)
	}

	globalMaps, err := timed("global_maps", func() ([]globalapi.Map, error) {
		return global.Maps(ctx, validatedOnly)
	})
	if err != nil {
		return nil, upstreamError(APIGlobal, err)
	}

	modes := filterModes(filters)
	workshop := workshopLinks(globalMaps)

	seen := make(map[uint16]bool, len(schnoseMaps))
	maps := make([]GlobalMap, 0, len(schnoseMaps))
	for _, sm := range schnoseMaps {
		if seen[sm.ID] {
			logger.Debug("Skipping duplicate map", logger.Fields{"map_id": sm.ID, "name": sm.Name})
			continue
		}
		seen[sm.ID] = true

		gm, err := merge(sm, modes[sm.ID], workshop[sm.ID])
		if err != nil {
			return nil, upstreamError(APISchnose, err)
		}
		maps = append(maps, gm)
	}

	sort.SliceStable(maps, func(i, j int) bool {
		return maps[i].Name < maps[j].Name
	})

	logger.Info("Aggregated maps", logger.Fields{
		"validated_only": validatedOnly,
		"maps":           len(maps),
		"filters":        len(filters),
		"duration_ms":    time.Since(start).Milliseconds(),
	})
	logger.SetGauge("maps.count", float64(len(maps)))

	return maps, nil
}

// timed runs one upstream call, recording its duration and outcome
func timed[T any](name string, call func() ([]T, error)) ([]T, error) {
	start := time.Now()
	result, err := call()
	logger.RecordTiming("fetch."+name, time.Since(start))

	if err != nil {
		logger.IncrCounter("fetch." + name + ".errors")
		logger.Error("Upstream call failed", logger.Fields{"call": name}, err)
		return nil, err
	}

	logger.Debug("Upstream call finished", logger.Fields{"call": name, "count": len(result)})
	return result, nil
}

// modeSet records which modes have a filter for one map
type modeSet struct {
	kzt, skz, vnl bool
}

func filterModes(filters []globalapi.RecordFilter) map[uint16]modeSet {
	modes := make(map[uint16]modeSet)
	for _, f := range filters {
		mode, ok := f.Mode()
		if !ok {
			continue
		}
		set := modes[f.MapID]
		switch mode {
		case kz.ModeKZTimer:
			set.kzt = true
		case kz.ModeSimpleKZ:
			set.skz = true
		case kz.ModeVanilla:
			set.vnl = true
		}
		modes[f.MapID] = set
	}
	return modes
}

// workshopLinks maps map ids to the first non-empty workshop URL
func workshopLinks(maps []globalapi.Map) map[uint16]string {
	links := make(map[uint16]string)
	for _, m := range maps {
		if m.WorkshopURL == "" {
			continue
		}
		if _, ok := links[m.ID]; !ok {
			links[m.ID] = m.WorkshopURL
		}
	}
	return links
}

func merge(sm schnoseapi.Map, modes modeSet, workshopURL string) (GlobalMap, error) {
	if len(sm.Courses) == 0 {
		return GlobalMap{}, fmt.Errorf("map %q (%d) has no courses", sm.Name, sm.ID)
	}

	courses := make([]Course, 0, len(sm.Courses))
	for _, c := range sm.Courses {
		courses = append(courses, Course{ID: c.ID, Stage: c.Stage, Tier: c.Tier})
	}

	mappers := make([]Mapper, 0, len(sm.Mappers))
	for _, m := range sm.Mappers {
		mappers = append(mappers, Mapper{Name: m.Name, SteamID: steamID64(sm, m.SteamID)})
	}

	gm := GlobalMap{
		ID:        sm.ID,
		Name:      sm.Name,
		Tier:      sm.Courses[0].Tier,
		Global:    sm.Global,
		Courses:   courses,
		KZT:       modes.kzt,
		SKZ:       modes.skz,
		VNL:       modes.vnl,
		Mappers:   mappers,
		Filesize:  sm.Filesize,
		CreatedOn: sm.CreatedOn,
		UpdatedOn: sm.UpdatedOn,
	}

	if sm.ApprovedBy != nil {
		approver := steamID64(sm, *sm.ApprovedBy)
		gm.ApproverSteamID = &approver
	}
	if workshopURL != "" {
		gm.WorkshopLink = &workshopURL
	}

	return gm, nil
}

// steamID64 normalizes raw, falling back to the raw value if it cannot be parsed
func steamID64(sm schnoseapi.Map, raw string) string {
	id, err := kz.NormalizeSteamID(raw)
	if err != nil {
		logger.Warn("Unparseable steam id", logger.Fields{"map": sm.Name, "steam_id": raw})
		return raw
	}
	return id
}
