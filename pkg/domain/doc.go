package domain

// domain package contains the Domain Models for the novel platform.
//
// `domain/ENTITY.go` has high-level entities and the parameters to create them.
// For example, `domain/novel.go` contains the `Novel` entity and `NovelParam`.
//
// Persistence of entities is described in `pkg/db` (interfaces) and
// `pkg/db/postgres` (implementation).
//
// # Entities
//
// - `user`: Account of a reader or an author. Users have a Role (User, VIP or Admin)
// and may have a profile picture.
//
// - `novel`: A work written by a user. Novels are tagged with NovelTypes,
// and they count views and likes. Novels are soft-deleted first,
// and removed physically by the "purge loop" after the retention period.
//
// - `chapter`: A part of a novel. Chapters are numbered from 1 in the order they are added.
//
// - `comment`: A message left on a novel by a user.
//
// - `ranking`: Daily popularity of novels. It is recomputed by the "ranking loop".
//
// And others:
//
// - `loop`: Manages recurring tasks. This defines constants for each loop.
// Implementation of the loop is in `cmd/loops/tasks/` directory.
