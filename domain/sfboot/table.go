package sfboot

// DefaultSpecs returns the sfboot attribute table.
func DefaultSpecs() []AttributeSpec {
	seconds := Template{Unit: "seconds"}
	return []AttributeSpec{
		// Global params
		{
			Label: "boot image", Name: "boot_image", Flag: "boot-image", Scope: ScopeGlobal,
			Rule: Lookup{Table: map[string]string{
				"option rom and uefi": "all",
				"option rom only":     "optionrom",
				"uefi only":           "uefi",
				"disabled":            "disabled",
			}},
			Description: "Which boot firmware images are served up to the BIOS during start-up",
		},
		{
			Label: "port mode", Name: "port_mode", Flag: "port-mode", Scope: ScopeGlobal,
			Rule:        Passthrough{},
			Description: "Port mode to use",
		},
		{
			Label: "firmware variant", Name: "firmware_variant", Flag: "firmware-variant", Scope: ScopeGlobal,
			Rule: Lookup{Table: map[string]string{
				"full feature / virtualization":     "full-feature",
				"ultra low latency":                 "ultra-low-latency",
				"capture packed stream":             "capture-packed-stream",
				"data plane development kit (dpdk)": "dpdk",
				"auto":                              "auto",
			}},
			Description: "Firmware variant to use",
		},
		{
			Label: "insecure filters", Name: "insecure_filters", Flag: "insecure-filters", Scope: ScopeGlobal,
			Rule:        Passthrough{},
			Description: "Let non-privileged functions bypass filter security (default/enabled/disabled)",
		},
		{
			Label: "mac spoofing", Name: "mac_spoofing", Flag: "mac-spoofing", Scope: ScopeGlobal,
			Rule:        Passthrough{},
			Description: "Let non-privileged functions create unicast filters for foreign MACs (default/enabled/disabled)",
		},
		{
			Label: "change mac", Name: "change_mac", Flag: "change-mac", Scope: ScopeGlobal,
			Rule:        Passthrough{},
			Description: "Let non-privileged functions change their unicast MAC (default/enabled/disabled)",
		},
		{
			Label: "rx descriptor cache size", Name: "rx_dc_size", Flag: "rx-dc-size", Scope: ScopeGlobal,
			Rule:        Integer{},
			Description: "Descriptor cache size for each receive queue",
		},
		{
			Label: "tx descriptor cache size", Name: "tx_dc_size", Flag: "tx-dc-size", Scope: ScopeGlobal,
			Rule:        Integer{},
			Description: "Descriptor cache size for each transmit queue",
		},
		{
			Label: "total number of vis", Name: "vi_count", Flag: "vi-count", Scope: ScopeGlobal,
			Rule:        Integer{},
			Description: "Total number of virtual interfaces available on the NIC",
		},
		{
			Label: "event merge timeout", Name: "event_merge_timeout", Flag: "event-merge-timeout", Scope: ScopeGlobal,
			Rule:        Template{Unit: "nanoseconds", Sentinel: "default"},
			Description: "RX event merging timeout in nanoseconds",
		},

		// Per-adapter params
		{
			Label: "link speed", Name: "link_speed", Flag: "link-speed", Scope: ScopeAdapter,
			Rule: Lookup{Table: map[string]string{
				"negotiated automatically": "auto",
				"10g bits/second":          "10g",
				"1g bits/second":           "1g",
				"100m bits/second":         "100m",
			}},
			Description: "Network link speed of the adapter",
		},
		{
			Label: "link-up delay time", Name: "linkup_delay", Flag: "linkup-delay", Scope: ScopeAdapter,
			Rule:        seconds,
			Description: "Seconds the adapter defers its first connection attempt after booting",
		},
		{
			Label: "banner delay time", Name: "banner_delay", Flag: "banner-delay", Scope: ScopeAdapter,
			Rule:        seconds,
			Description: "Seconds to wait for Ctrl-B to enter the adapter configuration tool",
		},
		{
			Label: "boot skip delay time", Name: "bootskip_delay", Flag: "bootskip-delay", Scope: ScopeAdapter,
			Rule:        seconds,
			Description: "Seconds allowed for Esc to skip adapter booting",
		},
		{
			Label: "boot type", Name: "boot_type", Flag: "boot-type", Scope: ScopeAdapter,
			Rule:        Passthrough{},
			Description: "Adapter boot type, pxe or disabled (effective from next reboot)",
		},
		{
			Label: "physical functions on this port", Name: "pf_count", Flag: "pf-count", Scope: ScopeAdapter,
			Rule:        Integer{},
			Description: "Number of PCIe physical functions on this port",
		},
		{
			Label: "pf msi-x interrupt limit", Name: "msix_limit", Flag: "msix-limit", Scope: ScopeAdapter,
			Rule:        Integer{},
			Description: "Maximum number of MSI-X interrupts each PF may use",
		},
		{
			Label: "virtual functions on each pf", Name: "vf_count", Flag: "vf-count", Scope: ScopeAdapter,
			Rule:        Integer{},
			Description: "Number of virtual functions advertised for each PF on this port",
		},
		{
			Label: "vf msi-x interrupt limit", Name: "vf_msix_limit", Flag: "vf-msix-limit", Scope: ScopeAdapter,
			Rule:        Integer{},
			Description: "Maximum number of MSI-X interrupts each VF may use",
		},
		{
			Label: "vlan tags", Name: "pf_vlans", Flag: "pf-vlans", Scope: ScopeAdapter,
			Rule:        SentinelList{Sentinel: VLANNone},
			Description: "VLAN tag for each PF on the port, or none",
		},
		{
			Label: "switch mode", Name: "switch_mode", Flag: "switch-mode", Scope: ScopeAdapter,
			Rule: Lookup{Table: map[string]string{
				"default":                  "default",
				"sr-iov":                   "sriov",
				"partitioning":             "partitioning",
				"partitioning with sr-iov": "partitioning-with-sriov",
				"pfiov":                    "pfiov",
			}},
			Description: "Mode of operation the port is used in",
		},
	}
}

// DefaultDictionary builds a fresh Dictionary from DefaultSpecs.
// It panics only if the built-in table itself is inconsistent.
func DefaultDictionary() *Dictionary {
	d, err := NewDictionary(DefaultSpecs()...)
	if err != nil {
		panic(err)
	}
	return d
}
