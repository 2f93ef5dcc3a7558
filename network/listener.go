package network

import (
	"log/slog"
)

// Listener receives notifications after successful changes. Calls are
// synchronous and happen once the change is applied in memory.
type Listener interface {
	OnCreation(obj Identifiable)
	OnUpdate(obj Identifiable, attribute, variantID string, oldValue, newValue any)
	OnRemoval(obj Identifiable)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) OnCreation(Identifiable)                         {}
func (NopListener) OnUpdate(Identifiable, string, string, any, any) {}
func (NopListener) OnRemoval(Identifiable)                          {}

// LogListener turns notifications into debug log records.
type LogListener struct {
	Logger *slog.Logger
}

func (l LogListener) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// OnCreation logs the new object id.
func (l LogListener) OnCreation(obj Identifiable) {
	l.logger().Debug("created", "id", obj.ID())
}

// OnUpdate logs the attribute change with its variant.
func (l LogListener) OnUpdate(obj Identifiable, attribute, variantID string, oldValue, newValue any) {
	l.logger().Debug("updated", "id", obj.ID(), "attribute", attribute,
		"variant", variantID, "old", oldValue, "new", newValue)
}

// OnRemoval logs the removed object id.
func (l LogListener) OnRemoval(obj Identifiable) {
	l.logger().Debug("removed", "id", obj.ID())
}

// Listeners fans notifications out in order.
type Listeners []Listener

// OnCreation forwards to every listener.
func (ls Listeners) OnCreation(obj Identifiable) {
	for _, l := range ls {
		l.OnCreation(obj)
	}
}

// OnUpdate forwards to every listener.
func (ls Listeners) OnUpdate(obj Identifiable, attribute, variantID string, oldValue, newValue any) {
	for _, l := range ls {
		l.OnUpdate(obj, attribute, variantID, oldValue, newValue)
	}
}

// OnRemoval forwards to every listener.
func (ls Listeners) OnRemoval(obj Identifiable) {
	for _, l := range ls {
		l.OnRemoval(obj)
	}
}
