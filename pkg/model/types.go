package model

import internalmodel "github.com/goliatone/go-dowhile/internal/model"

// Form re-exports the internal loop form enumeration.
type Form = internalmodel.Form

const (
	FormDoWhile   = internalmodel.FormDoWhile
	FormDoWhileDo = internalmodel.FormDoWhileDo
)

type Segment = internalmodel.Segment
type Raw = internalmodel.Raw
type Cond = internalmodel.Cond
type Block = internalmodel.Block
type Loop = internalmodel.Loop
type File = internalmodel.File
