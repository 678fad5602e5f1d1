package nav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/erazemk/omara/internal/metrics"
	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/slot"
	"github.com/erazemk/omara/internal/store"
)

// Config holds the coordinator's capacities and collaborators.
type Config struct {
	// Outfits is the number of outfit slots (N).
	Outfits int
	// Wears is the number of wear rows per outfit (K).
	Wears int

	Gateway  store.Gateway
	UI       UI
	Animator Animator
	Logger   *slog.Logger
	Metrics  *metrics.Metrics

	// Strict makes contract violations panic instead of returning
	// a PreconditionError. Use it in development builds and tests.
	Strict bool
}

// Entry is an occupied outfit slot.
type Entry struct {
	Slot   int
	Outfit model.Outfit
}

// RestoreReport describes what Restore put into the pool.
type RestoreReport struct {
	Loaded int
	// Dropped counts stored outfits beyond the pool capacity.
	Dropped int
	// TrimmedWears counts stored wear items beyond the row capacity.
	TrimmedWears int
	// Err is the load failure, if any. The pool then starts empty.
	Err error
}

// Outcome is the result of a mutating event. The mutation itself always
// happened; SaveErr is set when persisting it failed.
type Outcome struct {
	Slot    int
	SaveErr error
}

// Persisted reports whether the mutation reached durable storage.
func (o Outcome) Persisted() bool {
	return o.SaveErr == nil
}

// Coordinator is the catalogue's state machine. It is safe for concurrent
// use; events are applied one at a time.
type Coordinator struct {
	mu sync.Mutex

	pool      *slot.Pool[model.Outfit]
	form      *form
	wears     int
	state     State
	formValid bool
	restored  bool

	gateway  store.Gateway
	ui       UI
	animator Animator
	log      *slog.Logger
	metrics  *metrics.Metrics
	strict   bool

	base   context.Context
	stop   context.CancelFunc
	visual *visual
}

// New creates a coordinator. Call Restore before sending events.
func New(cfg Config) (*Coordinator, error) {
	if cfg.Outfits <= 0 {
		return nil, fmt.Errorf("outfit capacity must be positive, got %d", cfg.Outfits)
	}
	if cfg.Wears <= 0 {
		return nil, fmt.Errorf("wear capacity must be positive, got %d", cfg.Wears)
	}
	if cfg.Gateway == nil {
		return nil, errors.New("gateway required")
	}

	ui := cfg.UI
	if ui == nil {
		ui = nopUI{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base, stop := context.WithCancel(context.Background())
	return &Coordinator{
		pool:     slot.New[model.Outfit](cfg.Outfits),
		form:     newForm(cfg.Wears),
		wears:    cfg.Wears,
		state:    Browse(),
		gateway:  cfg.Gateway,
		ui:       ui,
		animator: cfg.Animator,
		log:      logger,
		metrics:  cfg.Metrics,
		strict:   cfg.Strict,
		base:     base,
		stop:     stop,
	}, nil
}

// Restore loads the saved outfits into the pool and shows the browse screen.
// Stored outfit i goes to slot i. Outfits beyond the pool capacity are
// dropped and counted in the report. A load failure is logged and leaves the
// pool empty. Restore must be called exactly once.
func (c *Coordinator) Restore(ctx context.Context) RestoreReport {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.restored {
		return RestoreReport{Err: c.violate("restore called twice")}
	}

	var report RestoreReport
	outfits, err := c.gateway.Load(ctx)
	if err != nil {
		c.metrics.PersistFailed("load")
		c.log.Error("failed to load outfits, starting empty", "error", err)
		report.Err = err
		outfits = nil
	}

	for i, o := range outfits {
		if i >= c.pool.Cap() {
			report.Dropped = len(outfits) - c.pool.Cap()
			break
		}
		if extra := len(o.WearItems) - c.wears; extra > 0 {
			report.TrimmedWears += extra
			o.WearItems = o.WearItems[:c.wears]
		}
		c.pool.Occupy(i, o.Clone())
		report.Loaded++
	}

	if report.Dropped > 0 {
		c.metrics.Dropped(report.Dropped)
		c.log.Warn("stored outfits exceed capacity, dropping the rest",
			"capacity", c.pool.Cap(), "stored", len(outfits), "dropped", report.Dropped)
	}
	if report.TrimmedWears > 0 {
		c.log.Warn("stored wear items exceed capacity, dropping the rest",
			"capacity", c.wears, "dropped", report.TrimmedWears)
	}

	c.restored = true
	for i := range c.pool.Cap() {
		if o, ok := c.pool.Get(i); ok {
			c.call("render outfit summary", c.ui.RenderOutfitSummary(i, o))
		} else {
			c.call("clear outfit summary", c.ui.ClearOutfitSummary(i))
		}
	}
	c.metrics.SetOutfitsActive(c.pool.Len())
	c.call("show screen", c.ui.ShowScreen(ScreenBrowse))

	c.log.Info("outfits restored", "loaded", report.Loaded, "capacity", c.pool.Cap())
	return report
}

// StartCreate opens an empty form for a new outfit.
func (c *Coordinator) StartCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("start create", ScreenBrowse); err != nil {
		return err
	}
	c.form.reset()
	c.transition(Create())
	c.renderForm()
	return nil
}

// Open shows the outfit in slot i.
func (c *Coordinator) Open(i int) error {
	return c.open(i, false)
}

func (c *Coordinator) open(i int, lookup bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("open outfit", ScreenBrowse); err != nil {
		return err
	}
	if lookup && !c.holds(i) {
		return c.notFound("outfit in slot %d", i)
	}
	o, err := c.occupied("open", i)
	if err != nil {
		return err
	}
	c.transition(Detail(i))
	c.renderWears(o.WearItems)
	return nil
}

// OpenWear shows wear item j of the open outfit.
func (c *Coordinator) OpenWear(j int) error {
	return c.openWear(j, false)
}

func (c *Coordinator) openWear(j int, lookup bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("open wear item", ScreenDetail); err != nil {
		return err
	}
	i := c.state.Slot
	o, err := c.occupied("open wear item", i)
	if err != nil {
		return err
	}
	if j < 0 || j >= len(o.WearItems) {
		if lookup {
			return c.notFound("wear item %d of slot %d", j, i)
		}
		return c.violate("open wear item: outfit in slot %d has no wear item %d", i, j)
	}
	c.transition(SubDetail(i, j))
	c.call("render wear item", c.ui.RenderWearItem(j, o.WearItems[j]))
	return nil
}

// Edit opens the form pre-populated from the open outfit.
func (c *Coordinator) Edit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("edit", ScreenDetail); err != nil {
		return err
	}
	i := c.state.Slot
	o, err := c.occupied("edit", i)
	if err != nil {
		return err
	}
	c.form.load(o)
	c.transition(Edit(i))
	c.renderForm()
	return nil
}

// Delete releases the open outfit's slot, saves, and returns to browse.
func (c *Coordinator) Delete(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("delete", ScreenDetail); err != nil {
		return Outcome{}, err
	}
	i := c.state.Slot
	if _, err := c.occupied("delete", i); err != nil {
		return Outcome{}, err
	}

	c.pool.Release(i)
	c.call("clear outfit summary", c.ui.ClearOutfitSummary(i))
	out := Outcome{Slot: i, SaveErr: c.save(ctx)}
	c.transition(Browse())

	c.log.Info("outfit deleted", "slot", i, "persisted", out.Persisted())
	return out, nil
}

// Submit stores the form. In create mode the outfit goes to the lowest free
// slot; in edit mode it replaces the edited slot's data in place. The state
// is unchanged when the form is incomplete or no slot is free.
func (c *Coordinator) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("submit", ScreenForm); err != nil {
		return Outcome{}, err
	}
	if missing := c.form.missing(); len(missing) > 0 {
		c.metrics.Reject("validation")
		return Outcome{}, &ValidationError{Missing: missing}
	}

	o := c.form.outfit()
	i := c.state.Slot
	if c.state.Mode == ModeCreate {
		var ok bool
		i, ok = c.pool.Allocate()
		if !ok {
			c.metrics.Reject("pool_exhausted")
			c.log.Warn("cannot add outfit, all slots in use", "capacity", c.pool.Cap())
			return Outcome{}, ErrPoolExhausted
		}
	} else if _, err := c.occupied("submit edit", i); err != nil {
		return Outcome{}, err
	}

	mode := c.state.Mode
	c.pool.Occupy(i, o)
	c.call("render outfit summary", c.ui.RenderOutfitSummary(i, o))
	out := Outcome{Slot: i, SaveErr: c.save(ctx)}
	c.form.reset()
	c.transition(Browse())

	if mode == ModeCreate {
		c.log.Info("outfit created", "slot", i, "wear_items", len(o.WearItems), "persisted", out.Persisted())
	} else {
		c.log.Info("outfit updated", "slot", i, "wear_items", len(o.WearItems), "persisted", out.Persisted())
	}
	return out, nil
}

// Cancel leaves the form without touching the pool. Cancelling a create
// returns to browse; cancelling an edit returns to the edited outfit.
func (c *Coordinator) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("cancel", ScreenForm); err != nil {
		return err
	}
	c.form.reset()
	if c.state.Mode == ModeEdit {
		i := c.state.Slot
		o, err := c.occupied("cancel edit", i)
		if err != nil {
			return err
		}
		c.transition(Detail(i))
		c.renderWears(o.WearItems)
		return nil
	}
	c.transition(Browse())
	return nil
}

// Back returns to browse, except from sub-detail, which returns to the
// outfit's detail. Back on the browse screen does nothing.
func (c *Coordinator) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.restored {
		return ErrNotRestored
	}

	switch c.state.Screen {
	case ScreenBrowse:
		return nil
	case ScreenSubDetail:
		i := c.state.Slot
		o, err := c.occupied("back", i)
		if err != nil {
			return err
		}
		c.transition(Detail(i))
		c.renderWears(o.WearItems)
	case ScreenForm:
		c.form.reset()
		c.transition(Browse())
	default:
		c.transition(Browse())
	}
	return nil
}

// SetField sets one of the form's text fields.
func (c *Coordinator) SetField(f Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("edit form", ScreenForm); err != nil {
		return err
	}
	if f < FieldSectionName || f > FieldTimeOfDay {
		return c.violate("unknown form field %d", int(f))
	}
	c.form.set(f, value)
	c.revalidate()
	return nil
}

// AddWearRow activates the lowest free wear row and returns its index.
func (c *Coordinator) AddWearRow() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("add wear item", ScreenForm); err != nil {
		return -1, err
	}
	row, ok := c.form.rows.Allocate()
	if !ok {
		c.metrics.Reject("wear_rows_exhausted")
		return -1, ErrWearRowsExhausted
	}
	item := model.NewWearItem("", "", nil)
	c.form.rows.Occupy(row, item)
	c.call("render wear item", c.ui.RenderWearItem(row, item))
	c.revalidate()
	return row, nil
}

// SetWearText replaces the name and materials of a wear row, keeping its photo.
func (c *Coordinator) SetWearText(row int, name, materials string) error {
	return c.setWearText(row, name, materials, false)
}

func (c *Coordinator) setWearText(row int, name, materials string, lookup bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("edit wear item", ScreenForm); err != nil {
		return err
	}
	cur, err := c.formRow("set wear text", row, lookup)
	if err != nil {
		return err
	}
	c.replaceRow(row, model.NewWearItem(name, materials, cur.Photo))
	return nil
}

// SetWearPhoto replaces the photo of a wear row. A nil photo removes it.
func (c *Coordinator) SetWearPhoto(row int, photo []byte) error {
	return c.setWearPhoto(row, photo, false)
}

func (c *Coordinator) setWearPhoto(row int, photo []byte, lookup bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("edit wear item", ScreenForm); err != nil {
		return err
	}
	cur, err := c.formRow("set wear photo", row, lookup)
	if err != nil {
		return err
	}
	c.replaceRow(row, model.NewWearItem(cur.Name, cur.Materials, photo))
	return nil
}

// RemoveWearRow frees a wear row.
func (c *Coordinator) RemoveWearRow(row int) error {
	return c.removeWearRow(row, false)
}

func (c *Coordinator) removeWearRow(row int, lookup bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("remove wear item", ScreenForm); err != nil {
		return err
	}
	if _, err := c.formRow("remove wear row", row, lookup); err != nil {
		return err
	}
	c.form.rows.Release(row)
	c.call("clear wear item", c.ui.ClearWearItem(row))
	c.revalidate()
	return nil
}

// State returns the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Capacity returns the outfit and wear-row capacities.
func (c *Coordinator) Capacity() (outfits, wears int) {
	return c.pool.Cap(), c.wears
}

// Outfit returns a copy of the outfit in slot i. It returns false for an
// empty or out-of-range slot.
func (c *Coordinator) Outfit(i int) (model.Outfit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.holds(i) {
		return model.Outfit{}, false
	}
	o, _ := c.pool.Get(i)
	return o.Clone(), true
}

// Outfits returns copies of the occupied slots in ascending slot order.
func (c *Coordinator) Outfits() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]Entry, 0, c.pool.Len())
	for i, o := range c.pool.Active() {
		entries = append(entries, Entry{Slot: i, Outfit: o.Clone()})
	}
	return entries
}

// AnyActive reports whether any outfit slot is occupied.
func (c *Coordinator) AnyActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pool.AnyActive()
}

// Full reports whether every outfit slot is occupied.
func (c *Coordinator) Full() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pool.Allocate()
	return !ok
}

// Form returns a copy of the form. It returns false outside the form screen.
func (c *Coordinator) Form() (FormSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Screen != ScreenForm {
		return FormSnapshot{}, false
	}
	return c.form.snapshot(), true
}

// expect checks that events are accepted and the coordinator is on screen.
func (c *Coordinator) expect(event string, screen Screen) error {
	if !c.restored {
		return ErrNotRestored
	}
	if c.state.Screen != screen {
		c.metrics.Reject("invalid_transition")
		return &TransitionError{Event: event, From: c.state}
	}
	return nil
}

// occupied returns the outfit in slot i, treating an empty or out-of-range
// slot as a contract violation.
func (c *Coordinator) occupied(op string, i int) (model.Outfit, error) {
	if !c.pool.InRange(i) {
		return model.Outfit{}, c.violate("%s: slot %d out of range [0,%d)", op, i, c.pool.Cap())
	}
	o, ok := c.pool.Get(i)
	if !ok {
		return model.Outfit{}, c.violate("%s: slot %d is empty", op, i)
	}
	return o, nil
}

func (c *Coordinator) holds(i int) bool {
	if !c.pool.InRange(i) {
		return false
	}
	_, ok := c.pool.Get(i)
	return ok
}

func (c *Coordinator) formRow(op string, row int, lookup bool) (model.WearItem, error) {
	if lookup && !c.form.holds(row) {
		return model.WearItem{}, c.notFound("wear row %d", row)
	}
	if !c.form.rows.InRange(row) {
		return model.WearItem{}, c.violate("%s: row %d out of range [0,%d)", op, row, c.wears)
	}
	w, ok := c.form.rows.Get(row)
	if !ok {
		return model.WearItem{}, c.violate("%s: row %d is not in use", op, row)
	}
	return w, nil
}

func (c *Coordinator) replaceRow(row int, item model.WearItem) {
	c.form.rows.Occupy(row, item)
	c.call("render wear item", c.ui.RenderWearItem(row, item))
	c.revalidate()
}

// violate reports a contract violation: a panic in strict mode, an error
// otherwise.
func (c *Coordinator) violate(format string, args ...any) error {
	err := &PreconditionError{Msg: fmt.Sprintf(format, args...)}
	if c.strict {
		panic(err)
	}
	c.metrics.Reject("precondition")
	c.log.Error("contract violation", "error", err)
	return err
}

func (c *Coordinator) notFound(format string, args ...any) error {
	c.metrics.Reject("not_found")
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// save persists the active outfits in slot order. The pool has already
// changed, so the save runs even if ctx is canceled. A failure is logged
// and returned; the pool stays as it is.
func (c *Coordinator) save(ctx context.Context) error {
	records := c.pool.Values()
	c.metrics.SetOutfitsActive(len(records))

	if err := c.gateway.Save(context.WithoutCancel(ctx), records); err != nil {
		c.metrics.PersistFailed("save")
		c.log.Error("failed to save outfits, keeping in-memory state", "error", err)
		return err
	}
	c.metrics.Saved()
	return nil
}

// transition moves to state to. The previous visual transition is canceled
// first, and exactly one screen is visible afterwards.
func (c *Coordinator) transition(to State) {
	from := c.state
	c.cancelVisual()

	if from.Screen != to.Screen {
		c.call("hide screen", c.ui.HideScreen(from.Screen))
		c.call("show screen", c.ui.ShowScreen(to.Screen))
	}
	c.state = to
	c.metrics.Transition(to.Screen.String())
	c.log.Debug("transition", "from", from.String(), "to", to.String())

	if from.Screen != to.Screen {
		c.playVisual(from.Screen, to.Screen)
	}
}

func (c *Coordinator) renderForm() {
	for row := range c.wears {
		if w, ok := c.form.rows.Get(row); ok {
			c.call("render wear item", c.ui.RenderWearItem(row, w))
		} else {
			c.call("clear wear item", c.ui.ClearWearItem(row))
		}
	}
	c.formValid = len(c.form.missing()) == 0
	c.call("form validity", c.ui.FormIsValidChanged(c.formValid))
}

func (c *Coordinator) renderWears(wears []model.WearItem) {
	for j := range c.wears {
		if j < len(wears) {
			c.call("render wear item", c.ui.RenderWearItem(j, wears[j]))
		} else {
			c.call("clear wear item", c.ui.ClearWearItem(j))
		}
	}
}

// revalidate notifies the UI when form validity flips.
func (c *Coordinator) revalidate() {
	valid := len(c.form.missing()) == 0
	if valid == c.formValid {
		return
	}
	c.formValid = valid
	c.call("form validity", c.ui.FormIsValidChanged(valid))
}

func (c *Coordinator) call(op string, err error) {
	if err != nil {
		c.log.Warn("ui call failed", "op", op, "error", err)
	}
}
