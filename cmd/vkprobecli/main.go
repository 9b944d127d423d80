// Command vkprobecli dumps info for every Vulkan physical device as
// JSON, capability summary included.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/vkprobe/device"
)

func main() {
	dev, err := device.NewVulkanDevice("vkprobecli")
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Destroy()

	bytes, err := json.Marshal(dev.PhysicalDevices())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(os.Stdout, "%s\n", bytes)
}
