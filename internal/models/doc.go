// Package models defines the core domain models for the wedding planner.
//
// # Model Hierarchy
//
// A WeddingProject is the root aggregate. It decomposes two ways:
//   - Time: Phase (a dated window) -> Task (a checklist item)
//   - Money: BudgetGroup (a spending category) -> Activity (a line item)
//
// Members participate in projects and may be assigned to tasks. Assignment
// is a many-to-many association by member ID; a member never owns a task.
//
// # Design Principles
//
// 1. **Server owns everything**: models are plain data; clients hold no
// authoritative state between refetches.
// 2. **Avoid circular references**: relationships use ID strings, not
// pointers, except where a parent embeds its children for transport
// (Phase.Tasks, BudgetGroup.Activities).
// 3. **Explicit identity**: anything that acts (creating, deleting, toggling)
// is identified by a member ID threaded through as a parameter, never held
// as ambient state.
package models
