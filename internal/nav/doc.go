// Package nav coordinates the catalogue screens.
//
// A Coordinator owns the outfit slot pool and the create/edit form. It moves
// between four screens (browse, form, detail and sub-detail) and routes every
// change to the persistence gateway and the UI collaborator.
//
// Events are serialized: each one finishes its pool mutation, its save and
// its screen change before the next one starts. Visual transitions run
// asynchronously through an Animator. Starting a new transition cancels the
// one still in flight, and the coordinator waits for it to stop first.
// Animators must never call back into the coordinator.
package nav
