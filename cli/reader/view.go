package reader

import (
	"strconv"

	"github.com/pithecene-io/fillwire/cli/config"
	"github.com/pithecene-io/fillwire/fill"
	"github.com/pithecene-io/fillwire/types"
)

// notPresent marks an absent optional value in summaries.
const notPresent = "-"

// View converts a response into its detailed view.
func View(resp *fill.Response) *ResponseView {
	v := &ResponseView{
		IgnoredIDs: fieldIDStrings(resp.IgnoredFieldIDs()),
	}

	if datasets := resp.Datasets(); datasets != nil {
		v.Datasets = make([]DatasetView, len(datasets))
		for i, ds := range datasets {
			v.Datasets[i] = datasetView(ds)
		}
	}

	if info := resp.SaveInfo(); info != nil {
		v.SaveInfo = &SaveInfoView{
			Types:       info.Types.String(),
			Required:    fieldIDStrings(info.RequiredIDs),
			Optional:    fieldIDStrings(info.OptionalIDs),
			Description: info.Description,
		}
	}

	if state := resp.ClientState(); state != nil {
		cs := &ClientStateView{Bytes: len(state)}
		if values, ok := config.DecodeClientState(state); ok {
			cs.Values = values
		}
		v.ClientState = cs
	}

	if tr := resp.AuthenticationTrigger(); tr != nil {
		v.Authentication = &AuthView{
			Target:   tr.Target,
			Layout:   resp.AuthenticationPresentation().Layout,
			FieldIDs: fieldIDStrings(resp.AuthenticationFieldIDs()),
		}
	}
	return v
}

// Summarize converts a response into its one-line summary.
func Summarize(frame int64, resp *fill.Response) Summary {
	s := Summary{
		Frame:          frame,
		Datasets:       resp.DatasetCount(),
		SaveInfo:       notPresent,
		Authentication: resp.AuthenticationTrigger() != nil,
		IgnoredIDs:     countOrNotPresent(resp.IgnoredFieldIDs()),
	}
	if info := resp.SaveInfo(); info != nil {
		s.SaveInfo = info.Types.String()
	}
	s.ClientStateBytes = len(resp.ClientState())
	return s
}

// SummarizeEntries summarizes every entry, keeping failed frames as rows
// with their error.
func SummarizeEntries(entries []Entry) []Summary {
	out := make([]Summary, 0, len(entries))
	for _, e := range entries {
		if e.Err != nil {
			out = append(out, Summary{
				Frame:      e.Frame,
				SaveInfo:   notPresent,
				IgnoredIDs: notPresent,
				Error:      e.Err.Error(),
			})
			continue
		}
		out = append(out, Summarize(e.Frame, e.Response))
	}
	return out
}

func datasetView(ds *types.Dataset) DatasetView {
	v := DatasetView{
		ID:            ds.ID,
		Fields:        make([]FieldValueView, len(ds.Values)),
		Authenticated: ds.Authentication != nil,
	}
	if ds.Presentation != nil {
		v.Presentation = ds.Presentation.Layout
	}
	for i, fv := range ds.Values {
		v.Fields[i] = FieldValueView{Field: fv.Field.String(), Value: fv.Value}
		if fv.Presentation != nil {
			v.Fields[i].Presentation = fv.Presentation.Layout
		}
	}
	return v
}

func fieldIDStrings(ids []types.FieldID) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func countOrNotPresent(ids []types.FieldID) string {
	if ids == nil {
		return notPresent
	}
	return strconv.Itoa(len(ids))
}
