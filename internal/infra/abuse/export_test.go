//go:build unit

package abuse

func (d *MemoryDetector) TrackedKeys() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.joins)
}
