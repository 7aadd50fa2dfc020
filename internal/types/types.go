// README: Common value objects shared across modules.
package types

// ID identifies a planning session or a saved plan.
type ID string
