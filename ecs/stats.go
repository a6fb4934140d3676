package ecs

import "sort"

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	TotalEntityCount int
	TableCount       int
	SingletonCount   int
	TableBreakdown   []TableStats
	SingletonTypes   []string
}

// TableStats describes one component table.
type TableStats struct {
	ComponentType  string
	ComponentCount int
}

// CollectStats summarises entity, table and singleton counts.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		TotalEntityCount: s.live,
		TableCount:       len(s.tables),
		SingletonCount:   len(s.singletons),
	}

	for typ, table := range s.tables {
		stats.TableBreakdown = append(stats.TableBreakdown, TableStats{
			ComponentType:  typ.String(),
			ComponentCount: table.Len(),
		})
	}
	sort.Slice(stats.TableBreakdown, func(i, j int) bool {
		return stats.TableBreakdown[i].ComponentType < stats.TableBreakdown[j].ComponentType
	})

	for typ := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, typ.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
