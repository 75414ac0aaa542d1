package object

// Layer is an ordered list of objects updated and drawn together. Objects
// spawned during Update are added once the update pass finishes.
type Layer struct {
	Objects []Object
	toSpawn []Object
}

// Spawn queues obj for addition after the current update cycle.
func (l *Layer) Spawn(obj Object) {
	l.toSpawn = append(l.toSpawn, obj)
}

// Add appends obj immediately.
func (l *Layer) Add(obj Object) {
	l.Objects = append(l.Objects, obj)
}

// Len returns the number of live objects, not counting queued spawns.
func (l *Layer) Len() int {
	return len(l.Objects)
}

// Update updates every object, drops the ones that ask to be removed and then
// flushes queued spawns. A nil ctx.Spawner is replaced by the layer itself.
func (l *Layer) Update(ctx UpdateContext) error {
	if ctx.Spawner == nil {
		ctx.Spawner = l
	}

	kept := l.Objects[:0]
	var firstErr error
	for _, obj := range l.Objects {
		remove, err := obj.Update(ctx)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if remove {
			ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(l.Objects[len(kept):])
	l.Objects = kept
	l.flushSpawned()
	return firstErr
}

func (l *Layer) flushSpawned() {
	if len(l.toSpawn) == 0 {
		return
	}
	l.Objects = append(l.Objects, l.toSpawn...)
	clear(l.toSpawn)
	l.toSpawn = l.toSpawn[:0]
}

// Draw draws every object in order.
func (l *Layer) Draw(ctx DrawContext) error {
	for _, obj := range l.Objects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// DrawText lets text-producing objects write their overlays. Call it after the
// canvas has been rendered.
func (l *Layer) DrawText(ctx DrawContext) {
	for _, obj := range l.Objects {
		if td, ok := obj.(TextDrawer); ok {
			td.DrawText(ctx)
		}
	}
}

// Clear removes all objects, returning pooled ones to their pools.
func (l *Layer) Clear() {
	for _, obj := range l.Objects {
		ReleaseObject(obj)
	}
	for _, obj := range l.toSpawn {
		ReleaseObject(obj)
	}
	clear(l.Objects)
	clear(l.toSpawn)
	l.Objects = l.Objects[:0]
	l.toSpawn = l.toSpawn[:0]
}
