// Package controller gates the placement engine behind a small mode
// state machine: Idle, single placement, or one-shot batch placement.
// It owns no buildings; committed instances go to the injected registry.
package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/EVAnunit1307/citysync/pkg/batch"
	"github.com/EVAnunit1307/citysync/pkg/building"
	"github.com/EVAnunit1307/citysync/pkg/geo"
	"github.com/EVAnunit1307/citysync/pkg/placement"
	"github.com/EVAnunit1307/citysync/pkg/registry"
	"github.com/EVAnunit1307/citysync/pkg/site"
)

// Mode is the controller's active placement mode.
type Mode int

const (
	ModeIdle Mode = iota
	ModeSingle
	ModeBatch
)

// String returns the mode name used in the API and logs.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeSingle:
		return "single"
	case ModeBatch:
		return "batch"
	}
	return fmt.Sprintf("unknown(%d)", int(m))
}

// ParseMode resolves an API name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "idle":
		return ModeIdle, nil
	case "single":
		return ModeSingle, nil
	case "batch":
		return ModeBatch, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Outcome is the result of a pointer click: what was committed and the
// message surfaced to the user.
type Outcome struct {
	Committed []building.Instance `json:"committed"`
	Message   string              `json:"message"`
}

// Controller runs the placement engine over a site config and registry.
// It is synchronous; callers serialize input events.
type Controller struct {
	site   *site.Config
	reg    registry.Registry
	logger *log.Logger

	mode       Mode
	singleType building.Type
	batchCfg   batch.Config
}

// New creates an idle controller. A nil logger discards output.
func New(cfg *site.Config, reg registry.Registry, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{site: cfg, reg: reg, logger: logger}
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// EnterSingle arms single-placement mode for the given building type.
func (c *Controller) EnterSingle(t building.Type) {
	c.mode = ModeSingle
	c.singleType = t
}

// EnterBatch arms one-shot batch mode with the given config.
func (c *Controller) EnterBatch(cfg batch.Config) {
	c.mode = ModeBatch
	c.batchCfg = cfg
}

// Cancel returns to idle without side effects.
func (c *Controller) Cancel() {
	c.mode = ModeIdle
}

// PointerMove runs the cheap feedback path for the current pointer
// position: eligibility plus full validation against the live obstacle
// snapshot. The second return is false when no mode is active, meaning
// there is nothing to give feedback about.
func (c *Controller) PointerMove(pt geo.Point2D) (placement.Result, bool) {
	if c.mode != ModeSingle && c.mode != ModeBatch {
		return placement.Result{}, false
	}
	if !placement.IsEligible(pt, c.site.WorldBound) {
		return placement.Result{Reason: placement.ReasonOutsideBounds}, true
	}

	t := c.feedbackType()
	cfg, err := c.validationConfig()
	if err != nil {
		// Feedback path has no error channel; show an invalid cursor.
		c.logger.Error("obstacle snapshot failed", "err", err)
		return placement.Result{}, true
	}
	return placement.Validate(pt, building.FootprintFor(t), t, cfg), true
}

// Click commits the current mode's action at the clicked ground point.
// Both modes are consumed by the click and the controller returns to
// idle. A click while idle (a stale or cancelled mode) is a no-op.
func (c *Controller) Click(raw geo.Point3D) (Outcome, error) {
	switch c.mode {
	case ModeSingle:
		return c.clickSingle(raw)
	case ModeBatch:
		return c.clickBatch(raw)
	}
	return Outcome{}, nil
}

func (c *Controller) clickSingle(raw geo.Point3D) (Outcome, error) {
	defer func() { c.mode = ModeIdle }()

	existing, err := c.reg.All()
	if err != nil {
		return Outcome{}, fmt.Errorf("reading registry: %w", err)
	}

	fp := building.FootprintFor(c.singleType)
	snap := placement.ComputeSnap(raw, fp, existing)

	cfg, err := c.validationConfig()
	if err != nil {
		return Outcome{}, err
	}
	res := placement.Validate(geo.Pt(snap.X, snap.Z), fp, c.singleType, cfg)
	if !res.OK {
		c.logger.Info("placement rejected", "type", c.singleType, "reason", res.Reason)
		return Outcome{Message: res.Reason}, nil
	}

	b := building.NewInstance(c.singleType, geo.Pt3(snap.X, snap.Y, snap.Z))
	if err := c.reg.Add(b); err != nil {
		return Outcome{}, fmt.Errorf("committing building: %w", err)
	}

	c.logger.Info("building placed",
		"type", c.singleType, "id", b.ID,
		"x", snap.X, "z", snap.Z, "snapped", snap.Snapped, "parcel", res.ParcelID)
	return Outcome{Committed: []building.Instance{b}, Message: "placed"}, nil
}

func (c *Controller) clickBatch(raw geo.Point3D) (Outcome, error) {
	defer func() { c.mode = ModeIdle }()

	proposals := batch.GenerateCluster(raw.XZ(), c.batchCfg, c.site.WorldBound)

	cfg, err := c.validationConfig()
	if err != nil {
		return Outcome{}, err
	}
	kept, summary := batch.FilterValid(proposals, cfg)

	for _, b := range kept {
		if err := c.reg.Add(b); err != nil {
			return Outcome{}, fmt.Errorf("committing batch building: %w", err)
		}
	}

	c.logger.Info("batch committed",
		"requested", c.batchCfg.TotalBuildings,
		"placed", summary.Placed, "blocked", summary.Total-summary.Placed)
	return Outcome{Committed: kept, Message: summary.String()}, nil
}

// feedbackType is the type used to size the live-feedback footprint: the
// armed single type, or the dominant mix type in batch mode.
func (c *Controller) feedbackType() building.Type {
	if c.mode == ModeSingle {
		return c.singleType
	}
	m := c.batchCfg.Mix
	t := building.Detached
	best := m.DetachedPct
	if m.TownhousePct > best {
		t, best = building.Townhouse, m.TownhousePct
	}
	if m.MidrisePct > best {
		t = building.Midrise
	}
	return t
}

// validationConfig refreshes the obstacle snapshot and assembles the
// read-only validation environment.
func (c *Controller) validationConfig() (placement.Config, error) {
	obstacles, err := c.reg.Obstacles()
	if err != nil {
		return placement.Config{}, fmt.Errorf("reading obstacle snapshot: %w", err)
	}
	return placement.ConfigFromSite(c.site, obstacles), nil
}
