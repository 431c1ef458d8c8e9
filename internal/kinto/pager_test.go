package kinto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var pagerResource = Resource{Bucket: "default", Collection: "items"}

func pagerRecord(id string, modified int64) Record {
	return Record{ID: id, LastModified: modified}
}

func TestNewPager(t *testing.T) {
	p := NewPager(pagerResource)

	require.Equal(t, pagerResource, p.Resource)
	require.Empty(t, p.Objects)
	require.Zero(t, p.Total)
	require.False(t, p.HasNext())
}

func TestPagerMergeAppends(t *testing.T) {
	p := NewPager(pagerResource).Merge(Page{
		Objects:  []Record{pagerRecord("a", 1), pagerRecord("b", 2)},
		Total:    4,
		NextPage: "http://example.com/records?_token=t1",
	})

	require.Len(t, p.Objects, 2)
	require.Equal(t, 4, p.Total)
	require.True(t, p.HasNext())

	p = p.Merge(Page{
		Objects: []Record{pagerRecord("c", 3), pagerRecord("d", 4)},
		Total:   4,
	})

	require.Len(t, p.Objects, 4)
	require.Equal(t, "a", p.Objects[0].ID)
	require.Equal(t, "d", p.Objects[3].ID)
	require.False(t, p.HasNext(), "cursor comes from the latest page")
}

func TestPagerMergeLeavesReceiverUntouched(t *testing.T) {
	base := NewPager(pagerResource).Merge(Page{Objects: []Record{pagerRecord("a", 1)}, Total: 1})

	_ = base.Merge(Page{Objects: []Record{pagerRecord("b", 2)}, Total: 2})

	require.Len(t, base.Objects, 1)
	require.Equal(t, 1, base.Total)
}

func TestPagerReset(t *testing.T) {
	p := NewPager(pagerResource).Merge(Page{
		Objects:  []Record{pagerRecord("a", 1)},
		Total:    9,
		NextPage: "http://example.com/next",
	})

	p = p.Reset()

	require.Equal(t, pagerResource, p.Resource)
	require.Empty(t, p.Objects)
	require.Zero(t, p.Total)
	require.False(t, p.HasNext())
}

func TestPagerRemoveByID(t *testing.T) {
	p := NewPager(pagerResource).Merge(Page{
		Objects: []Record{pagerRecord("a", 1), pagerRecord("b", 2), pagerRecord("c", 3)},
		Total:   3,
	})

	p = p.RemoveByID("b")

	require.Len(t, p.Objects, 2)
	require.Equal(t, "a", p.Objects[0].ID)
	require.Equal(t, "c", p.Objects[1].ID)

	p = p.RemoveByID("missing")

	require.Len(t, p.Objects, 2)
}
