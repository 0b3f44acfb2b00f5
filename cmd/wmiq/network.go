package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/mscrnt/wmiq/pkg/wmiops"
	"github.com/spf13/cobra"
)

// networkProperties is the JSON allow-list for adapter output.
var networkProperties = []string{
	"Description", "MACAddress", "DHCPEnabled", "IPAddress",
	"IPSubnet", "DefaultIPGateway", "DNSServerSearchOrder",
}

func networkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "network",
		Short: "Show IP-enabled network adapters",
		Long: `Show the configuration of every IP-enabled network adapter: MAC,
DHCP, addresses, gateway, and DNS.

Examples:
  wmiq network
  wmiq network --format json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			started := time.Now()
			client, err := newClient()
			if err != nil {
				recordHistory(historyEntry("network", "", started, 0, err))
				return err
			}
			defer func() { _ = client.Close() }()

			adapters, err := wmiops.NewNetworkManager(client).Adapters()
			recordHistory(historyEntry("network", "", started, len(adapters), err))
			if err != nil {
				return err
			}

			if flagFormat != formatTable {
				return renderRecords(adapters, nil, networkProperties)
			}

			if len(adapters) == 0 {
				fmt.Println("No IP-enabled adapters")
				return nil
			}
			for i, a := range adapters {
				if i > 0 {
					fmt.Println()
				}
				fmt.Printf("%s\n", a.Str("Description"))
				fmt.Printf("  MAC:     %s\n", displayValue(a.Str("MACAddress")))
				dhcp := "No"
				if a.Bool("DHCPEnabled") {
					dhcp = "Yes"
				}
				fmt.Printf("  DHCP:    %s\n", dhcp)
				printAddressList("IP", a.Strings("IPAddress"))
				printAddressList("Subnet", a.Strings("IPSubnet"))
				printAddressList("Gateway", a.Strings("DefaultIPGateway"))
				printAddressList("DNS", a.Strings("DNSServerSearchOrder"))
			}
			return nil
		},
	}
}

func printAddressList(label string, addrs []string) {
	if len(addrs) == 0 {
		return
	}
	fmt.Printf("  %-8s %s\n", label+":", strings.Join(addrs, ", "))
}
