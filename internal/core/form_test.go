package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inovacc/kollect/internal/kinto"
)

func TestFormDataIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		form FormData
		want bool
	}{
		{name: "zero draft", form: FormData{}, want: true},
		{name: "title only", form: FormData{Title: "x"}, want: false},
		{name: "description only", form: FormData{Description: "x"}, want: false},
		{name: "id only", form: FormData{ID: strPtr("a")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.form.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordToForm(t *testing.T) {
	form := RecordToForm(testRecord("a", "one", "first", 1))

	require.NotNil(t, form.ID)
	require.Equal(t, "a", *form.ID)
	require.Equal(t, "one", form.Title)
	require.Equal(t, "first", form.Description)
}

func TestRecordToFormAbsentFields(t *testing.T) {
	form := RecordToForm(kinto.Record{ID: "a", LastModified: 1})

	require.NotNil(t, form.ID)
	require.Empty(t, form.Title)
	require.Empty(t, form.Description)
}

func TestFormBodyDropsID(t *testing.T) {
	body := FormBody(FormData{ID: strPtr("a"), Title: "one", Description: "first"})

	require.Equal(t, kinto.RecordBody{Title: "one", Description: "first"}, body)
}

func TestLiveReflectClonesObjects(t *testing.T) {
	pager := kinto.NewPager(testResource).Merge(kinto.Page{
		Objects: []kinto.Record{testRecord("a", "one", "first", 1)},
		Total:   1,
	})

	reflected := liveReflect(pager, FormData{ID: strPtr("a"), Title: "edited"})

	require.Equal(t, "edited", *reflected.Objects[0].Title)
	require.Equal(t, "one", *pager.Objects[0].Title, "older pager value stays unchanged")
}
