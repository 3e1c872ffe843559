// Package domain contains the core business entities, value objects, and
// domain logic of the application. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
//
// The only entity is Task. Callers describe a task with a TaskDraft, which is
// normalized (trimmed and validated) before anything is stored.
package domain
