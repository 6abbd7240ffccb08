// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay

// Strategy renders cluster badges for a 3D view. *Renderer implements it;
// hosts depend on Strategy so a different presentation can be swapped in.
type Strategy[H comparable] interface {
	UpdateClusters(clusters []Cluster[H], frame Frame)
	SetHoveredCluster(h H)
	ClearHoveredCluster()
	SetVisible(visible bool)
	Dispose()
}

var _ Strategy[int] = (*Renderer[int])(nil)
