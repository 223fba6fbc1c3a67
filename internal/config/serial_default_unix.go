//go:build !windows

package config

const defaultSerialPort = "/dev/ttyACM0"
