package dropdown

import (
	"iter"
	"sync"

	"github.com/vango-dev/dropdown/pkg/reactive"
	"github.com/vango-dev/dropdown/pkg/vdom"
)

// Class hooks emitted by Render. Styling is left to the page.
const (
	ClassRoot         = "dropdown"
	ClassCurrent      = "dropdown__current"
	ClassCurrentOpen  = "dropdown__current--open"
	ClassCurrentClose = "dropdown__current--close"
	ClassLabel        = "dropdown__label"
	ClassIcon         = "dropdown__icon"
	ClassIconOpen     = "dropdown__icon--open"
	ClassIconClosed   = "dropdown__icon--closed"
	ClassMenu         = "dropdown__menu"
	ClassMenuItem     = "dropdown__item"
)

// Values of the data-part attribute on the trigger, menu and entries.
const (
	PartTrigger = "trigger"
	PartMenu    = "menu"
	PartItem    = "item"
)

// Props is the caller-supplied configuration, replaced wholesale on every
// render pass via SetProps.
type Props struct {
	// CurrentOption is the selected value; "" means nothing is selected.
	CurrentOption string

	// Options is the full candidate list in display order.
	Options []Option

	// ClassName is appended to the root element's class list.
	ClassName string

	// OnChange receives the value of an activated menu entry. nil makes
	// selection a no-op.
	OnChange func(value string)
}

// Config holds construction-time settings.
type Config struct {
	// CloseOnSelect closes the menu after OnChange runs. Off by default: the
	// menu stays open after a selection.
	CloseOnSelect bool

	// OnLookupMiss is called during Render when CurrentOption is non-empty
	// but matches no option.
	OnLookupMiss func(value string)
}

// ConfigOption configures a Dropdown.
type ConfigOption func(*Config)

// WithCloseOnSelect sets Config.CloseOnSelect.
func WithCloseOnSelect(close bool) ConfigOption {
	return func(c *Config) {
		c.CloseOnSelect = close
	}
}

// WithLookupMiss sets Config.OnLookupMiss.
func WithLookupMiss(fn func(value string)) ConfigOption {
	return func(c *Config) {
		c.OnLookupMiss = fn
	}
}

// Dropdown is one mounted widget instance. Its open state lives in a signal
// owned by the instance's reactive.Owner, so every Toggle re-runs the owner's
// render subscribers.
type Dropdown struct {
	owner *reactive.Owner
	open  *reactive.BoolSignal
	cfg   Config

	mu    sync.RWMutex
	props Props
}

// New mounts a dropdown under owner. A nil owner gets a fresh root owner.
// The menu starts closed.
func New(owner *reactive.Owner, props Props, opts ...ConfigOption) *Dropdown {
	if owner == nil {
		owner = reactive.NewOwner(nil)
	}
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Dropdown{
		owner: owner,
		open:  reactive.UseBool(owner, false),
		cfg:   cfg,
		props: props,
	}
}

// Owner returns the reactive scope of this instance.
func (d *Dropdown) Owner() *reactive.Owner {
	return d.owner
}

// IsOpen reports whether the menu is shown.
func (d *Dropdown) IsOpen() bool {
	return d.open.Get()
}

// Toggle flips the open state.
func (d *Dropdown) Toggle() {
	d.open.Toggle()
}

// Props returns the props of the latest render pass.
func (d *Dropdown) Props() Props {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.props
}

// SetProps replaces the props and schedules a re-render. Open state is kept.
func (d *Dropdown) SetProps(p Props) {
	d.mu.Lock()
	d.props = p
	d.mu.Unlock()
	d.owner.MarkDirty()
}

// Select reports value to OnChange exactly once. The selection itself is
// not changed here; the caller feeds it back through SetProps. Changes made
// by the callback and the optional close are folded into one re-render.
func (d *Dropdown) Select(value string) {
	onChange := d.Props().OnChange
	d.owner.Batch(func() {
		if onChange != nil {
			onChange(value)
		}
		if d.cfg.CloseOnSelect {
			d.open.SetFalse()
		}
	})
}

// Current returns the option matching CurrentOption.
func (d *Dropdown) Current() (Option, bool) {
	p := d.Props()
	return Lookup(p.Options, p.CurrentOption)
}

// MenuOptions yields the entries the open menu shows: every option except
// the current one, recomputed from the latest props.
func (d *Dropdown) MenuOptions() iter.Seq[Option] {
	p := d.Props()
	return Others(p.Options, p.CurrentOption)
}

// Dispose unmounts the instance, dropping its open state.
func (d *Dropdown) Dispose() {
	d.owner.Dispose()
}

// Render builds the widget tree from the current open state and props.
func (d *Dropdown) Render() *vdom.VNode {
	p := d.Props()
	open := d.open.Get()

	return vdom.Div(
		vdom.Class(vdom.CN(ClassRoot, p.ClassName)),
		d.renderTrigger(p, open),
		vdom.When(open, func() *vdom.VNode { return d.renderMenu(p) }),
	)
}

func (d *Dropdown) renderTrigger(p Props, open bool) *vdom.VNode {
	current, ok := Lookup(p.Options, p.CurrentOption)
	if !ok && p.CurrentOption != "" && d.cfg.OnLookupMiss != nil {
		d.cfg.OnLookupMiss(p.CurrentOption)
	}

	return vdom.Button(
		vdom.Type("button"),
		vdom.Class(vdom.CN(ClassCurrent, vdom.CNIf(open, ClassCurrentOpen), vdom.CNIf(!open, ClassCurrentClose))),
		vdom.Data("part", PartTrigger),
		vdom.AriaExpanded(open),
		vdom.OnClick(d.Toggle),
		vdom.If(ok, vdom.Span(vdom.Class(ClassLabel), vdom.Text(current.Label))),
		arrowIcon(open),
	)
}

func (d *Dropdown) renderMenu(p Props) *vdom.VNode {
	return vdom.Div(
		vdom.Class(ClassMenu),
		vdom.Data("part", PartMenu),
		vdom.RangeSeq(Others(p.Options, p.CurrentOption), func(o Option) *vdom.VNode {
			return vdom.Button(
				vdom.Key(o.Value),
				vdom.Type("button"),
				vdom.Class(ClassMenuItem),
				vdom.Data("part", PartItem),
				vdom.Data("value", o.Value),
				vdom.OnClick(func() { d.Select(o.Value) }),
				vdom.Span(vdom.Text(o.Label)),
			)
		}),
	)
}

func arrowIcon(open bool) *vdom.VNode {
	return vdom.Svg(
		vdom.Class(vdom.CN(ClassIcon, vdom.CNIf(open, ClassIconOpen), vdom.CNIf(!open, ClassIconClosed))),
		vdom.ViewBox("0 0 10 6"),
		vdom.Width(10),
		vdom.Height(6),
		vdom.AriaHidden(true),
		vdom.Path(vdom.D("M1 1l4 4 4-4"), vdom.Fill("none"), vdom.Stroke("currentColor")),
	)
}
