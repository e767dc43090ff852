package sfboot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
)

func TestOutputToAttr(t *testing.T) {
	dict := DefaultDictionary()
	cases := []struct {
		label string
		name  string
		value string
		want  Value
	}{
		{"Boot image", "boot_image", "Option ROM and UEFI", String("all")},
		{"Boot image", "boot_image", "Option ROM only", String("optionrom")},
		{"Boot image", "boot_image", "UEFI only", String("uefi")},
		{"Boot image", "boot_image", "Disabled", String("disabled")},
		{"Link speed", "link_speed", "Negotiated automatically", String("auto")},
		{"Link speed", "link_speed", "10G bits/second", String("10g")},
		{"Link speed", "link_speed", "1G bits/second", String("1g")},
		{"Link speed", "link_speed", "100m bits/second", String("100m")},
		{"Link-up delay time", "linkup_delay", "5 seconds", Int(5)},
		{"Link-up delay time", "linkup_delay", "255 seconds", Int(255)},
		{"Banner delay time", "banner_delay", "2 seconds", Int(2)},
		{"Boot skip delay time", "bootskip_delay", "0 seconds", Int(0)},
		{"Boot type", "boot_type", "PXE", String("pxe")},
		{"Boot type", "boot_type", "Disabled", String("disabled")},
		{"Physical Functions on this port", "pf_count", "1", Int(1)},
		{"PF MSI-X interrupt limit", "msix_limit", "32", Int(32)},
		{"Virtual Functions on each PF", "vf_count", "0", Int(0)},
		{"VF MSI-X interrupt limit", "vf_msix_limit", "8", Int(8)},
		{"Port mode", "port_mode", "[4x10/25G]", String("[4x10/25g]")},
		{"Port mode", "port_mode", "[1x10/25g][1x10/25G]", String("[1x10/25g][1x10/25g]")},
		{"Firmware variant", "firmware_variant", "Full feature / virtualization", String("full-feature")},
		{"Firmware variant", "firmware_variant", "Ultra low latency", String("ultra-low-latency")},
		{"Firmware variant", "firmware_variant", "Capture packed stream", String("capture-packed-stream")},
		{"Firmware variant", "firmware_variant", "Data Plane Development Kit (DPDK)", String("dpdk")},
		{"Firmware variant", "firmware_variant", "Auto", String("auto")},
		{"Insecure filters", "insecure_filters", "Enabled", String("enabled")},
		{"MAC spoofing", "mac_spoofing", "Default", String("default")},
		{"Change MAC", "change_mac", "Disabled", String("disabled")},
		{"VLAN tags", "pf_vlans", "None", Sentinel("none")},
		{"VLAN tags", "pf_vlans", "11,12,234", IntList{11, 12, 234}},
		{"Switch mode", "switch_mode", "SR-IOV", String("sriov")},
		{"Switch mode", "switch_mode", "Partitioning", String("partitioning")},
		{"Switch mode", "switch_mode", "Partitioning with SR-IOV", String("partitioning-with-sriov")},
		{"Switch mode", "switch_mode", "PFIOV", String("pfiov")},
		{"RX descriptor cache size", "rx_dc_size", "32", Int(32)},
		{"TX descriptor cache size", "tx_dc_size", "16", Int(16)},
		{"Total number of VIs", "vi_count", "2048", Int(2048)},
		{"Event merge timeout", "event_merge_timeout", "1500 nanoseconds", Int(1500)},
		{"Event merge timeout", "event_merge_timeout", "Default", Sentinel("default")},
		{"  Link speed ", "link_speed", " 10G bits/second  ", String("10g")},
	}
	for _, tc := range cases {
		t.Run(tc.label+"/"+tc.value, func(t *testing.T) {
			name, v, ok, err := dict.Decode(tc.label, tc.value)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tc.name, name)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestAttrToCLI(t *testing.T) {
	dict := DefaultDictionary()
	cases := []struct {
		name  string
		value Value
		want  string
	}{
		{"boot_image", String("optionrom"), "boot-image=optionrom"},
		{"linkup_delay", Int(255), "linkup-delay=255"},
		{"boot_type", String("PXE"), "boot-type=PXE"},
		{"port_mode", String("[1x10/25g][1x10/25g]"), "port-mode=[1x10/25g][1x10/25g]"},
		{"pf_vlans", Sentinel("none"), "pf-vlans=none"},
		{"pf_vlans", String("none"), "pf-vlans=none"},
		{"pf_vlans", IntList{11, 12, 234}, "pf-vlans=11,12,234"},
		{"pf_vlans", Int(7), "pf-vlans=7"},
		{"rx_dc_size", Int(32), "rx-dc-size=32"},
		{"vi_count", Int(2048), "vi-count=2048"},
		{"event_merge_timeout", Int(1500), "event-merge-timeout=1500"},
		{"event_merge_timeout", Sentinel("default"), "event-merge-timeout=default"},
		{"event_merge_timeout", String("default"), "event-merge-timeout=default"},
		{"mac_spoofing", String("enabled"), "mac-spoofing=enabled"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			opt, ok, err := dict.Encode(tc.name, tc.value)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tc.want, opt.Flag+"="+opt.Value)
		})
	}
}

func TestLookupRoundTrip(t *testing.T) {
	dict := DefaultDictionary()
	for _, spec := range dict.Specs() {
		lookup, ok := spec.Rule.(Lookup)
		if !ok {
			continue
		}
		for phrase, tag := range lookup.Table {
			t.Run(spec.Name+"/"+phrase, func(t *testing.T) {
				name, v, ok, err := dict.Decode(spec.Label, phrase)
				require.NoError(t, err)
				require.True(t, ok)
				assert.Equal(t, spec.Name, name)
				assert.Equal(t, String(tag), v)

				opt, ok, err := dict.Encode(name, v)
				require.NoError(t, err)
				require.True(t, ok)
				assert.Equal(t, spec.Flag, opt.Flag)
				assert.Equal(t, tag, opt.Value)
			})
		}
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	dict := DefaultDictionary()
	for _, spec := range dict.Specs() {
		tmpl, ok := spec.Rule.(Template)
		if !ok {
			continue
		}
		for _, n := range []int{0, 1, 2, 5, 100, 255, 1500, 65535} {
			name, v, ok, err := dict.Decode(spec.Label, fmt.Sprintf("%d %s", n, tmpl.Unit))
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, Int(n), v, "%s %d", spec.Name, n)

			opt, _, err := dict.Encode(name, v)
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("%s=%d", spec.Flag, n), opt.Flag+"="+opt.Value)
		}
	}
}

func TestVLANRoundTrip(t *testing.T) {
	dict := DefaultDictionary()

	_, none, _, err := dict.Decode("VLAN tags", "none")
	require.NoError(t, err)
	assert.Equal(t, Sentinel("none"), none)

	_, list, _, err := dict.Decode("VLAN tags", "0,100,110,120")
	require.NoError(t, err)
	assert.Equal(t, IntList{0, 100, 110, 120}, list)

	opt, _, err := dict.Encode("pf_vlans", list)
	require.NoError(t, err)
	assert.Equal(t, "pf-vlans=0,100,110,120", opt.Flag+"="+opt.Value)

	opt, _, err = dict.Encode("pf_vlans", none)
	require.NoError(t, err)
	assert.Equal(t, "pf-vlans=none", opt.Flag+"="+opt.Value)

	_, dup, _, err := dict.Decode("VLAN tags", "5, 5,1")
	require.NoError(t, err)
	assert.Equal(t, IntList{5, 5, 1}, dup)
}

func TestDecodeErrors(t *testing.T) {
	dict := DefaultDictionary()
	cases := []struct {
		label string
		value string
	}{
		{"Link speed", "40G bits/second"},
		{"Link-up delay time", "five seconds"},
		{"Link-up delay time", "5 minutes"},
		{"Link-up delay time", "5"},
		{"Link-up delay time", "+5 seconds"},
		{"Link-up delay time", "-5 seconds"},
		{"Link-up delay time", "5   seconds"},
		{"Event merge timeout", "1 500 nanoseconds"},
		{"PF MSI-X interrupt limit", "lots"},
		{"VLAN tags", "1,two,3"},
		{"Event merge timeout", "none"},
		{"Switch mode", "Partitioned"},
	}
	for _, tc := range cases {
		t.Run(tc.label+"/"+tc.value, func(t *testing.T) {
			_, _, ok, err := dict.Decode(tc.label, tc.value)
			require.Error(t, err)
			assert.False(t, ok)
			var de *nxerrors.DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.value, de.Value)
			assert.Equal(t, nxerrors.KindParse, nxerrors.KindOf(err))
		})
	}
}

func TestUnknownNamesAreDropped(t *testing.T) {
	dict := DefaultDictionary()

	_, _, ok, err := dict.Decode("Flux capacitor", "1.21 GW")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = dict.Encode("evt_cut_thru", String("disabled"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEncodeRejectsListForScalar(t *testing.T) {
	dict := DefaultDictionary()
	_, ok, err := dict.Encode("link_speed", IntList{1, 2})
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, nxerrors.KindValidation, nxerrors.KindOf(err))
}

func TestCoerceMatchesDecode(t *testing.T) {
	dict := DefaultDictionary()
	cases := []struct {
		name string
		in   Value
		want Value
	}{
		{"pf_vlans", String("none"), Sentinel(VLANNone)},
		{"pf_vlans", String("None"), Sentinel(VLANNone)},
		{"pf_vlans", Int(5), IntList{5}},
		{"pf_vlans", String("0, 100"), IntList{0, 100}},
		{"pf_vlans", IntList{0, 100}, IntList{0, 100}},
		{"event_merge_timeout", String("Default"), Sentinel("default")},
		{"event_merge_timeout", String("1500"), Int(1500)},
		{"event_merge_timeout", Int(1500), Int(1500)},
		{"linkup_delay", String("5"), Int(5)},
		{"vi_count", String("2048"), Int(2048)},
		{"boot_type", Int(7), String("7")},
		{"boot_image", String("UEFI"), String("UEFI")},
		{"link_speed", IntList{1}, IntList{1}},
		{"warp", String("9"), String("9")},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s/%v", tc.name, tc.in), func(t *testing.T) {
			got := dict.Coerce(tc.name, tc.in)
			assert.Equal(t, tc.want, got)
		})
	}
	assert.Nil(t, dict.Coerce("pf_vlans", nil))
}

func TestCoercedRequestEqualsReport(t *testing.T) {
	dict := DefaultDictionary()
	requested := Attributes{
		"pf_vlans":            String("none"),
		"event_merge_timeout": String("default"),
		"vf_count":            String("2"),
	}.Coerce(dict)

	report := map[string]string{
		"VLAN tags":                    "None",
		"Event merge timeout":          "Default",
		"Virtual Functions on each PF": "2",
	}
	for label, text := range report {
		name, v, ok, err := dict.Decode(label, text)
		require.NoError(t, err)
		require.True(t, ok, label)
		assert.True(t, Equal(requested[name], v), "%s: requested %v, reported %v", name, requested[name], v)
	}
}
